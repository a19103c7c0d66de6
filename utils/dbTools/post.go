package dbTools

import (
	"context"
	"errors"
	"time"

	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"gorm.io/gorm"
)

// PageSize est la taille de page du feed et des listes par auteur.
const PageSize = 3

// PostStore ne fait aucun contrôle de propriété : la porte d'autorisation
// est en amont, dans les handlers.
type PostStore interface {
	Create(ctx context.Context, authorID uint, title, content string) (*models.Post, error)
	Get(ctx context.Context, id uint) (*models.Post, error)
	ListPage(ctx context.Context, page int) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, page int) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post, title, content string) error
	Delete(ctx context.Context, id uint) error
}

type postStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) PostStore {
	return &postStore{db: db}
}

func (s *postStore) Create(ctx context.Context, authorID uint, title, content string) (*models.Post, error) {
	post := &models.Post{
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postStore) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *postStore) ListPage(ctx context.Context, page int) ([]models.Post, int64, error) {
	return s.page(s.db.WithContext(ctx).Model(&models.Post{}), page)
}

func (s *postStore) ListByAuthor(ctx context.Context, authorID uint, page int) ([]models.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID)
	return s.page(query, page)
}

// page clampe les numéros hors bornes : page < 1 devient 1, une page au
// delà de la fin rend une liste vide, jamais une erreur.
func (s *postStore) page(query *gorm.DB, page int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.
		Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *postStore) Update(ctx context.Context, post *models.Post, title, content string) error {
	post.Title = title
	post.Content = content
	return s.db.WithContext(ctx).Model(post).
		Updates(map[string]any{"title": title, "content": content}).Error
}

func (s *postStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
