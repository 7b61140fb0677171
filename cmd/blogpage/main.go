// Command blogpage serves, imports and exports a markdown blog.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/eringen/blogpage"
	"github.com/eringen/blogpage/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// globalOptions apply to every command.
type globalOptions struct {
	SiteName        string        `long:"site-name" env:"SITE_NAME" default:"Blog" description:"Site name"`
	SiteURL         string        `long:"site-url" env:"SITE_URL" default:"http://localhost:3000" description:"Public base URL for canonical and social links"`
	SiteDescription string        `long:"site-description" env:"SITE_DESCRIPTION" description:"Site description for feeds and meta tags"`
	SiteLang        string        `long:"site-lang" env:"SITE_LANG" default:"uk" description:"Document language of every page"`
	ContentDir      string        `long:"content-dir" env:"CONTENT_DIR" default:"content/posts" description:"Directory of .md/.mdx posts"`
	Source          string        `long:"source" env:"CONTENT_SOURCE" default:"dir" choice:"dir" choice:"sqlite" description:"Where posts are read from"`
	DatabasePath    string        `long:"db" env:"DATABASE_PATH" default:"data/blog.db" description:"SQLite database path"`
	StaticDir       string        `long:"static-dir" env:"STATIC_DIR" default:"public" description:"Directory of static assets and author portraits"`
	PostCacheTTL    time.Duration `long:"post-cache-ttl" env:"POST_CACHE_TTL" default:"5m" description:"How long the post collection is cached; 0 disables the cache"`
	LogLevel        string        `long:"log-level" env:"LOG_LEVEL" default:"info" description:"Log level (debug, info, warn, error)"`
	LogFormat       string        `long:"log-format" env:"LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"Log output format"`
}

var opts globalOptions

func (o *globalOptions) siteConfig() blogpage.SiteConfig {
	return blogpage.SiteConfig{
		Name:         o.SiteName,
		URL:          o.SiteURL,
		Description:  o.SiteDescription,
		Lang:         o.SiteLang,
		ContentDir:   o.ContentDir,
		Source:       o.Source,
		DatabasePath: o.DatabasePath,
		PostCacheTTL: cacheTTL(o.PostCacheTTL),
	}
}

// cacheTTL maps a flag value to a SiteConfig TTL, where 0 would select
// the default instead of disabling the cache.
func cacheTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return -1
	}
	return d
}

func (o *globalOptions) logger() *slog.Logger {
	l := logging.New(os.Stderr, o.LogFormat, o.LogLevel)
	slog.SetDefault(l)
	return l
}

type versionCommand struct{}

func (versionCommand) Execute([]string) error {
	fmt.Printf("blogpage %s\n", version)
	return nil
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.ShortDescription = "A markdown blog server"
	parser.LongDescription = "blogpage renders markdown posts as pages with author portraits, SEO metadata and BlogPosting JSON-LD."

	mustAdd(parser.AddCommand("serve", "Serve the blog over HTTP", "Serve the blog over HTTP until interrupted.", &serveCommand{}))
	mustAdd(parser.AddCommand("import", "Import posts into SQLite", "Copy the posts of the content directory into the SQLite database, replacing its contents.", &importCommand{}))
	mustAdd(parser.AddCommand("export", "Export a static site", "Render every page into a directory of static files.", &exportCommand{}))
	mustAdd(parser.AddCommand("version", "Print the version", "Print the blogpage version.", &versionCommand{}))

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func mustAdd(_ *flags.Command, err error) {
	if err != nil {
		panic(err)
	}
}
