package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	blog "github.com/BrandynThibaultMerkle/test-blog"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Optional .env next to the binary; real env vars win.
	_ = godotenv.Load()

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "regenerate":
		if err := runRegenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("test-blog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	app := blog.New(cfg)
	defer app.Close()
	return app.Start()
}

func runRegenerate(args []string) error {
	fs := flag.NewFlagSet("regenerate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to YAML config file (optional)")
	baseURL := fs.String("base-url", "", "base URL for sitemap and feed links (default: site URL)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	app := blog.New(cfg)
	defer app.Close()
	if err := app.Init(); err != nil {
		return err
	}
	return app.RegenerateSEO(*baseURL)
}

// loadConfig builds a SiteConfig from the YAML file when given, otherwise
// from environment variables.
func loadConfig(path string) (blog.SiteConfig, error) {
	if path != "" {
		return blog.LoadConfig(path)
	}

	cfg := blog.SiteConfig{
		Name:        blog.EnvOr("BLOG_NAME", ""),
		URL:         blog.EnvOr("BLOG_URL", ""),
		Description: blog.EnvOr("BLOG_DESCRIPTION", ""),
		Author:      blog.EnvOr("BLOG_AUTHOR", ""),

		Addr:      blog.EnvOr("BLOG_ADDR", ""),
		PublicDir: blog.EnvOr("BLOG_PUBLIC_DIR", ""),
		DataDir:   blog.EnvOr("BLOG_DATA_DIR", ""),
		HTMLDir:   blog.EnvOr("BLOG_HTML_DIR", ""),

		RegenSchedule: blog.EnvOr("BLOG_REGEN_SCHEDULE", ""),
	}

	if v := os.Getenv("BLOG_POSTS_PER_PAGE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid BLOG_POSTS_PER_PAGE: %q", v)
		}
		cfg.PostsPerPage = n
	}
	if v := os.Getenv("BLOG_GENERATE_HTML_ON_CREATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid BLOG_GENERATE_HTML_ON_CREATE: %q", v)
		}
		cfg.GenerateHTMLOnCreate = b
	}

	return cfg, nil
}

func printUsage() {
	fmt.Println(`test-blog - file-backed blog content engine

Usage:
  test-blog <command> [arguments]

Commands:
  serve         Start the blog API server
  regenerate    Regenerate static HTML, sitemap.xml, and feed.xml
  version       Print the version
  help          Show this help message

Examples:
  test-blog serve
  test-blog serve -config site.yaml
  test-blog regenerate -base-url https://example.com`)
}
