package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFuncRejectsDuplicateNames(t *testing.T) {
	s := New()
	require.NoError(t, s.AddFunc("0 0 9 * * *", "scan", func() {}))

	err := s.AddFunc("0 0 10 * * *", "scan", func() {})
	assert.Error(t, err)

	jobs := s.Jobs()
	assert.Equal(t, map[string]string{"scan": "0 0 9 * * *"}, jobs)
}

func TestAddFuncRejectsBadSpec(t *testing.T) {
	s := New()
	err := s.AddFunc("not a spec", "broken", func() {})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}
