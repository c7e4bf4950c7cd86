package usecase

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmake/pkg/domain/model"
)

const indexFile = "index.html"

// PublishDocs moves freshly generated pages into the publish directory.
// If the build directory holds no index page, nothing is touched and 0 is returned.
// Otherwise the publish directory is replaced by the generated tree, the aux
// file is copied in, and every page is stripped of lines containing the strip pattern.
func PublishDocs(ctx context.Context, paths model.DocsSettings) (int, error) {
	logger := ctxlog.From(ctx)

	if _, err := os.Stat(filepath.Join(paths.BuildDir, indexFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("No generated index page, skipping publish", "build_dir", paths.BuildDir)
			return 0, nil
		}
		return 0, goerr.Wrap(err, "failed to stat generated index", goerr.V("build_dir", paths.BuildDir))
	}

	if err := os.RemoveAll(paths.PublishDir); err != nil {
		return 0, goerr.Wrap(err, "failed to remove publish directory", goerr.V("publish_dir", paths.PublishDir))
	}
	if err := os.CopyFS(paths.PublishDir, os.DirFS(paths.BuildDir)); err != nil {
		return 0, goerr.Wrap(err, "failed to copy generated docs",
			goerr.V("build_dir", paths.BuildDir),
			goerr.V("publish_dir", paths.PublishDir))
	}
	if err := os.RemoveAll(paths.BuildDir); err != nil {
		return 0, goerr.Wrap(err, "failed to remove build directory", goerr.V("build_dir", paths.BuildDir))
	}

	if paths.AuxFile != "" {
		dst := filepath.Join(paths.PublishDir, filepath.Base(paths.AuxFile))
		if err := copyFile(paths.AuxFile, dst); err != nil {
			return 0, err
		}
	}

	pages := 0
	err := filepath.WalkDir(paths.PublishDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".html" {
			return nil
		}
		pages++
		if paths.StripPattern == "" {
			return nil
		}
		logger.Debug("Filtering page", "path", path)
		return StripLines(path, paths.StripPattern)
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to post-process docs", goerr.V("publish_dir", paths.PublishDir))
	}

	logger.Info("Published documentation", "publish_dir", paths.PublishDir, "pages", pages)
	return pages, nil
}

// StripLines rewrites the file at path without the lines that contain pattern.
// Remaining lines, including their line endings, are kept verbatim and in order.
func StripLines(path, pattern string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read page", goerr.V("path", path))
	}

	var out bytes.Buffer
	r := bufio.NewReader(bytes.NewReader(data))
	for {
		line, err := r.ReadString('\n')
		if line != "" && !strings.Contains(line, pattern) {
			out.WriteString(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to scan page", goerr.V("path", path))
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat page", goerr.V("path", path))
	}
	if err := os.WriteFile(path, out.Bytes(), info.Mode().Perm()); err != nil {
		return goerr.Wrap(err, "failed to write page", goerr.V("path", path))
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open aux file", goerr.V("path", src))
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return goerr.Wrap(err, "failed to create aux file copy", goerr.V("path", dst))
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return goerr.Wrap(err, "failed to copy aux file", goerr.V("src", src), goerr.V("dst", dst))
	}
	if err := out.Close(); err != nil {
		return goerr.Wrap(err, "failed to close aux file copy", goerr.V("path", dst))
	}
	return nil
}
