package dbTools

import (
	"context"
	"errors"
	"strings"

	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"github.com/Romain-GUILLEMOT/PlumyrBack/utils"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("un compte avec cet email existe déjà")
	ErrUsernameTaken      = errors.New("ce nom d'utilisateur est déjà pris")
	ErrNotFound           = errors.New("introuvable")
	ErrInvalidCredentials = errors.New("identifiants incorrects")
)

// UserStore porte les opérations d'identité. Les emails sont normalisés en
// minuscules à l'entrée, les usernames comparés tels quels.
type UserStore interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, username, email, avatar string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
}

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (s *userStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(email)

	if _, err := s.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Avatar:   models.DefaultAvatar,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate ne distingue pas "email inconnu" de "mauvais mot de passe".
func (s *userStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile tolère les champs inchangés : l'unicité n'est vérifiée que
// si la valeur diffère de celle du compte lui-même.
func (s *userStore) UpdateProfile(ctx context.Context, userID uint, username, email, avatar string) (*models.User, error) {
	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email = strings.ToLower(email)
	if email != user.Email {
		if _, err := s.FindByEmail(ctx, email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Email = email
	}
	if username != user.Username {
		if _, err := s.FindByUsername(ctx, username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		user.Username = username
	}
	if avatar != "" {
		user.Avatar = avatar
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userStore) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hashed).Error
}
