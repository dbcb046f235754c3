package screenreport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan(t *testing.T) {
	root := tree(t,
		"de-DE/iPhone-13-1.png",
		"de-DE/iPhone 13 2.png",
		"de-DE/3.png",
		"en-US/iPad  Pro - 1.jpg",
	)

	rs, err := Plan(root)
	require.NoError(t, err)
	assert.Equal(t, []Rename{
		{From: filepath.Join(root, "de-DE", "iPhone-13-1.png"), To: filepath.Join(root, "de-DE", "iPhone 13 1.png")},
		{From: filepath.Join(root, "en-US", "iPad  Pro - 1.jpg"), To: filepath.Join(root, "en-US", "iPad Pro 1.jpg")},
	}, rs)
}

func TestApply(t *testing.T) {
	root := tree(t,
		"de-DE/iPhone-1.png",
		"de-DE/iPhone--2.png",
		"de-DE/iPhone 2.png",
	)

	rs, err := Plan(root)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	require.NoError(t, Apply(rs))

	assert.FileExists(t, filepath.Join(root, "de-DE", "iPhone 1.png"))
	assert.NoFileExists(t, filepath.Join(root, "de-DE", "iPhone-1.png"))
	// An existing canonical file is never overwritten.
	assert.FileExists(t, filepath.Join(root, "de-DE", "iPhone--2.png"))
	assert.Equal(t, "de-DE/iPhone 2.png", readFile(t, filepath.Join(root, "de-DE", "iPhone 2.png")))

	rs, err = Plan(root)
	require.NoError(t, err)
	assert.Len(t, rs, 1)
}
