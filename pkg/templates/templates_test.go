package templates

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrokit/retrogen/pkg/errors"
)

func TestEmbeddedTree(t *testing.T) {
	src := Embedded()

	client, err := src.Client()
	require.NoError(t, err)

	var javaFiles []string
	err = fs.WalkDir(client, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsTemplateFile(path) {
			javaFiles = append(javaFiles, path)
		}
		return nil
	})
	require.NoError(t, err)

	want := []string{
		"dto/__ApiName__RequestDto.java",
		"dto/__ApiName__ResponseDto.java",
		"mapper/__ApiName__RequestClientMapper.java",
		"mapper/__ApiName__ResponseClientMapper.java",
		"rest/__ApiName__Client.java",
		"rest/api/__ApiName__Api.java",
		"rest/impl/__ApiName__ClientImpl.java",
	}
	assert.ElementsMatch(t, want, javaFiles)

	domain, err := src.Domain()
	require.NoError(t, err)
	entries, err := fs.ReadDir(domain, "external_request")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestEmbeddedSnippets(t *testing.T) {
	src := Embedded()

	for _, name := range []string{SnippetRestClientImport, SnippetRestClientBean, SnippetEndpointsBean} {
		text, err := src.Snippet(name)
		require.NoError(t, err, "snippet %s", name)
		assert.NotEmpty(t, text)
	}

	imp, err := src.Snippet(SnippetRestClientImport)
	require.NoError(t, err)
	assert.Contains(t, imp, "import __basePackage__.client.rest.api.__ApiName__Api;")

	_, err = src.Snippet("Nope.java")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
}

func TestFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "client"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client", "__ApiName__Client.java"), []byte("stub"), 0644))

	src, err := FromDir(dir)
	require.NoError(t, err)

	client, err := src.Client()
	require.NoError(t, err)
	data, err := fs.ReadFile(client, "__ApiName__Client.java")
	require.NoError(t, err)
	assert.Equal(t, "stub", string(data))

	// domain subtree is absent from this override
	_, err = src.Domain()
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
}

func TestFromDirUnreadable(t *testing.T) {
	_, err := FromDir(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRead))
}

func TestOpen(t *testing.T) {
	src, err := Open("")
	require.NoError(t, err)
	_, err = src.Client()
	assert.NoError(t, err)
}
