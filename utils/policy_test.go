package utils

import (
	"testing"

	"github.com/Romain-GUILLEMOT/PlumyrBack/models"
	"github.com/stretchr/testify/assert"
)

func TestCanModifyPost(t *testing.T) {
	post := &models.Post{ID: 1, AuthorID: 10}

	assert.True(t, CanModifyPost(10, post), "le propriétaire peut modifier")
	assert.False(t, CanModifyPost(11, post), "un autre utilisateur ne peut pas")
	assert.False(t, CanModifyPost(0, post), "anonyme ne peut pas")
	assert.False(t, CanModifyPost(10, nil))
}
