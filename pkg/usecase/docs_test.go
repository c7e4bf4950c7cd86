package usecase_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relmake/pkg/domain/model"
	"github.com/m-mizutani/relmake/pkg/usecase"
)

const strip = `modernizr.min.js"`

func emptyDocsPaths(t *testing.T) model.DocsSettings {
	root := t.TempDir()
	return model.DocsSettings{
		SourceDir:    filepath.Join(root, "sphinx"),
		BuildDir:     filepath.Join(root, "sphinx", "_build", "html"),
		PublishDir:   filepath.Join(root, "docs"),
		AuxFile:      filepath.Join(root, "sphinx", "CNAME"),
		StripPattern: strip,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	return string(data)
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	gt.NoError(t, err)
	sort.Strings(files)
	return files
}

const indexPage = `<html>
<head>
<script src="_static/js/modernizr.min.js"></script>
<script src="_static/js/theme.js"></script>
</head>
<body>index</body>
</html>
`

// SphinxStub writes a generated tree into the build dir when called
type SphinxStub struct {
	t         *testing.T
	paths     model.DocsSettings
	withIndex bool
	called    bool
}

func (s *SphinxStub) Generate(ctx context.Context) error {
	s.called = true
	if s.withIndex {
		writeFile(s.t, filepath.Join(s.paths.BuildDir, "index.html"), indexPage)
	}
	writeFile(s.t, filepath.Join(s.paths.BuildDir, "api", "module.html"),
		"<p>one</p>\n<script src=\"../_static/js/modernizr.min.js\"></script>\n<p>two</p>")
	writeFile(s.t, filepath.Join(s.paths.BuildDir, "_static", "style.css"), "body{}\n")
	return nil
}

func newDocsUseCase(t *testing.T, answers []bool, withIndex bool) (*SphinxStub, model.DocsSettings, func() (*model.Result, error)) {
	paths := emptyDocsPaths(t)
	writeFile(t, paths.AuxFile, "docs.example.com\n")
	writeFile(t, filepath.Join(paths.PublishDir, "stale.html"), "old page\n")

	stub := &SphinxStub{t: t, paths: paths, withIndex: withIndex}
	f := newFixture(t, newPrompter(answers...))
	f.deps.Docs = stub
	f.deps.DocsPaths = paths

	uc := usecase.NewRelease(f.deps)
	return stub, paths, func() (*model.Result, error) {
		return uc.BuildDocs(context.Background(), loadedConfig)
	}
}

func TestReleaseUseCase_BuildDocs(t *testing.T) {
	t.Run("declined leaves the filesystem alone", func(t *testing.T) {
		stub, paths, run := newDocsUseCase(t, []bool{false}, true)

		result, err := run()
		gt.NoError(t, err)
		gt.V(t, result).Nil()
		gt.B(t, stub.called).False()
		gt.V(t, listFiles(t, paths.PublishDir)).Equal([]string{"stale.html"})
		_, err = os.Stat(paths.BuildDir)
		gt.B(t, errors.Is(err, fs.ErrNotExist)).True()
	})

	t.Run("missing index skips relocation", func(t *testing.T) {
		stub, paths, run := newDocsUseCase(t, []bool{true}, false)

		result, err := run()
		gt.NoError(t, err)
		gt.V(t, result).NotNil()
		gt.B(t, stub.called).True()
		gt.V(t, listFiles(t, paths.PublishDir)).Equal([]string{"stale.html"})
		gt.V(t, readFile(t, filepath.Join(paths.PublishDir, "stale.html"))).Equal("old page\n")
	})

	t.Run("generated tree replaces publish dir", func(t *testing.T) {
		_, paths, run := newDocsUseCase(t, []bool{true}, true)

		result, err := run()
		gt.NoError(t, err)
		gt.V(t, result.Name).Equal("build docs")
		gt.B(t, result.OK()).True()

		gt.V(t, listFiles(t, paths.PublishDir)).Equal([]string{
			"CNAME",
			"_static/style.css",
			"api/module.html",
			"index.html",
		})
		gt.V(t, readFile(t, filepath.Join(paths.PublishDir, "CNAME"))).Equal("docs.example.com\n")

		gt.V(t, readFile(t, filepath.Join(paths.PublishDir, "index.html"))).Equal(`<html>
<head>
<script src="_static/js/theme.js"></script>
</head>
<body>index</body>
</html>
`)
		gt.V(t, readFile(t, filepath.Join(paths.PublishDir, "api", "module.html"))).Equal("<p>one</p>\n<p>two</p>")
		gt.V(t, readFile(t, filepath.Join(paths.PublishDir, "_static", "style.css"))).Equal("body{}\n")

		_, err = os.Stat(paths.BuildDir)
		gt.B(t, errors.Is(err, fs.ErrNotExist)).True()
	})
}

func TestStripLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes matching lines",
			input: "a\n<script src=\"modernizr.min.js\"></script>\nb\n",
			want:  "a\nb\n",
		},
		{
			name:  "keeps CRLF endings",
			input: "a\r\n<script src=\"modernizr.min.js\"></script>\r\nb\r\n",
			want:  "a\r\nb\r\n",
		},
		{
			name:  "last line without newline",
			input: "a\nb",
			want:  "a\nb",
		},
		{
			name:  "matching last line without newline",
			input: "a\n<script src=\"modernizr.min.js\"></script>",
			want:  "a\n",
		},
		{
			name:  "unquoted reference is kept",
			input: "see modernizr.min.js for details\n",
			want:  "see modernizr.min.js for details\n",
		},
		{
			name:  "empty file",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "page.html")
			writeFile(t, path, tt.input)

			gt.NoError(t, usecase.StripLines(path, strip))
			gt.V(t, readFile(t, path)).Equal(tt.want)
		})
	}
}
