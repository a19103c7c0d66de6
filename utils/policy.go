package utils

import "github.com/Romain-GUILLEMOT/PlumyrBack/models"

// CanModifyPost est l'unique porte d'autorisation sur les posts : seul le
// propriétaire peut modifier ou supprimer. Les stores ne revérifient pas.
func CanModifyPost(actorID uint, post *models.Post) bool {
	return actorID != 0 && post != nil && post.AuthorID == actorID
}
