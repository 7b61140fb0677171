package content

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterFence = []byte("---")

// DirProvider reads posts from *.md and *.mdx files in a directory. The slug
// is the file name without extension; files are returned in name order.
type DirProvider struct {
	fsys fs.FS
	dir  string
}

// NewDirProvider creates a DirProvider for the directory at path.
func NewDirProvider(dir string) *DirProvider {
	return &DirProvider{fsys: os.DirFS(dir), dir: "."}
}

// NewFSProvider creates a DirProvider reading dir inside fsys.
func NewFSProvider(fsys fs.FS, dir string) *DirProvider {
	return &DirProvider{fsys: fsys, dir: dir}
}

// ListPosts reads and parses every post file.
func (d *DirProvider) ListPosts(ctx context.Context) ([]Post, error) {
	entries, err := fs.ReadDir(d.fsys, d.dir)
	if err != nil {
		return nil, fmt.Errorf("content: read dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var posts []Post
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		ext := path.Ext(entry.Name())
		if ext != ".md" && ext != ".mdx" {
			continue
		}
		data, err := fs.ReadFile(d.fsys, path.Join(d.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", entry.Name(), err)
		}
		meta, body, err := ParseFrontmatter(data)
		if err != nil {
			return nil, fmt.Errorf("content: parse %s: %w", entry.Name(), err)
		}
		post := Post{
			Slug:     strings.TrimSuffix(entry.Name(), ext),
			Metadata: meta,
			Content:  body,
		}
		if err := post.Validate(); err != nil {
			return nil, fmt.Errorf("content: %s: %w", entry.Name(), err)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// ParseFrontmatter splits a post file into its YAML metadata block and body.
// The block must open the file and be fenced by "---" lines.
func ParseFrontmatter(data []byte) (Metadata, string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	trimmed := bytes.TrimLeft(data, " \t\n")
	if !bytes.HasPrefix(trimmed, frontmatterFence) {
		return Metadata{}, "", fmt.Errorf("%w: missing frontmatter", ErrInvalidPost)
	}
	rest := trimmed[len(frontmatterFence):]
	end, next := closingFence(rest)
	if end < 0 {
		return Metadata{}, "", fmt.Errorf("%w: unterminated frontmatter", ErrInvalidPost)
	}
	var meta Metadata
	if err := yaml.Unmarshal(rest[:end], &meta); err != nil {
		return Metadata{}, "", fmt.Errorf("%w: frontmatter: %v", ErrInvalidPost, err)
	}
	return meta, strings.TrimSpace(string(rest[next:])), nil
}

// closingFence finds the first line after the opening one that is "---",
// ignoring trailing blanks. It returns the offsets of that line and of the
// text after it, or -1 when there is none.
func closingFence(b []byte) (int, int) {
	for start := 0; start < len(b); {
		line, next := b[start:], len(b)
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line, next = line[:i], start+i+1
		}
		if start > 0 && bytes.Equal(bytes.TrimRight(line, " \t"), frontmatterFence) {
			return start, next
		}
		start = next
	}
	return -1, -1
}
