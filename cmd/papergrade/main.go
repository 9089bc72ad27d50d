package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/papergrade/papergrade"
	"github.com/papergrade/papergrade/analyze"
	"github.com/papergrade/papergrade/crawl"
	"github.com/papergrade/papergrade/fs"
	"github.com/papergrade/papergrade/gofpdf"
	"github.com/papergrade/papergrade/goquery"
	pghttp "github.com/papergrade/papergrade/http"
	"github.com/papergrade/papergrade/pdftext"
	"github.com/papergrade/papergrade/perplexity"
	pgslog "github.com/papergrade/papergrade/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Directory where produced artifacts are stored. Set before calling
	// Run().
	StoreDir string

	// Session state shared by commands, exposed for end-to-end testing.
	Session *papergrade.Session
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		StoreDir: defaultStoreDir(),
		Session:  papergrade.NewSession(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Session: m.Session,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("papergrade"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'papergrade --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	fetcher := pghttp.NewFetcher()
	defer fetcher.Close()
	deps.Fetcher = pgslog.NewLoggingFetcher(fetcher, logger)

	detector := goquery.NewDetector()
	deps.Classifier = pghttp.NewClassifier(deps.Fetcher, detector, goquery.NewPDFRefFinder())
	deps.Assembler = gofpdf.NewAssembler()
	deps.PDFText = pdftext.NewExtractor()
	deps.Store = fs.NewStore(m.StoreDir)

	delay := crawl.DefaultCrawlDelay
	if cmd == "crawl" {
		delay = cli.Crawl.Delay
	}
	deps.Crawler = &crawl.Crawler{
		Fetcher:  deps.Fetcher,
		Menu:     goquery.NewMenuSelector(),
		Pages:    goquery.NewPageSelector(),
		Throttle: crawl.NewThrottle(delay),
	}

	if cmd == "analyze" {
		apiKey := os.Getenv("PERPLEXITY_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "PERPLEXITY_API_KEY environment variable not set")
			return papergrade.Errorf(papergrade.EINVALID, "PERPLEXITY_API_KEY not set")
		}

		client, err := perplexity.NewClient(apiKey)
		if err != nil {
			return err
		}
		deps.Analyzer = &analyze.Analyzer{
			Chat: pgslog.NewLoggingChatService(client, logger),
		}
	}

	return kongCtx.Run(deps)
}

func defaultStoreDir() string {
	if dir := os.Getenv("PAPERGRADE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "papergrade"
	}
	return filepath.Join(home, ".papergrade")
}
