package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModule_IsProtected(t *testing.T) {
	assert.True(t, (&Module{ID: 1}).IsProtected())
	assert.True(t, (&Module{ID: MaxProtectedModuleID}).IsProtected())
	assert.False(t, (&Module{ID: MaxProtectedModuleID + 1}).IsProtected())
}

func TestModule_IsWeighted(t *testing.T) {
	assert.True(t, (&Module{Scoring: ScoringWeighted}).IsWeighted())
	assert.False(t, (&Module{Scoring: ScoringExact}).IsWeighted())
	assert.False(t, (&Module{}).IsWeighted())
}
