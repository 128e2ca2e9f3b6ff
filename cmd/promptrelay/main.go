// promptrelay - chat prompt relay to OpenAI / Groq.
// Entry point: flag parsing, wiring and process lifecycle.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/matiasleandrokruk/promptrelay/internal/api"
	"github.com/matiasleandrokruk/promptrelay/internal/domain/assistant"
	"github.com/matiasleandrokruk/promptrelay/internal/domain/audit"
	"github.com/matiasleandrokruk/promptrelay/internal/domain/quote"
	"github.com/matiasleandrokruk/promptrelay/internal/infra/config"
	"github.com/matiasleandrokruk/promptrelay/internal/infra/eventbus"
	"github.com/matiasleandrokruk/promptrelay/internal/infra/llm"
	"github.com/matiasleandrokruk/promptrelay/internal/infra/sqlite"
	"github.com/matiasleandrokruk/promptrelay/internal/server"
	"github.com/matiasleandrokruk/promptrelay/internal/version"
	pkgauth "github.com/matiasleandrokruk/promptrelay/pkg/auth"
)

const shutdownTimeout = 10 * time.Second

var (
	errNoAuditDB  = errors.New("AUDIT_DB_PATH is not set")
	errNoSecret   = errors.New("AUTH_JWT_SECRET is not set")
	errNoSubject  = errors.New("--subject is required")
	errUnknownCmd = errors.New("unknown command")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

type options struct {
	envFile string
	host    string
	port    int
	subject string
	ttl     time.Duration
}

func run(args []string, out io.Writer) int {
	fs := pflag.NewFlagSet("promptrelay", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts options
	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.BoolP("help", "h", false, "Show help")
	fs.StringVar(&opts.envFile, "env-file", ".env", "Load environment variables from this file if it exists")
	fs.StringVar(&opts.host, "host", "", "Listen host (overrides HOST)")
	fs.IntVar(&opts.port, "port", 0, "Listen port (overrides PORT)")
	fs.StringVar(&opts.subject, "subject", "", "Token subject (token command)")
	fs.DurationVar(&opts.ttl, "ttl", pkgauth.DefaultTokenTTL, "Token lifetime (token command)")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(out, "promptrelay: %v\n", err) //nolint:errcheck
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}
	if *showHelp {
		printHelp(out)
		return 0
	}

	if err := config.LoadDotEnv(opts.envFile); err != nil {
		fmt.Fprintf(out, "promptrelay: %v\n", err) //nolint:errcheck
		return 1
	}
	cfg := config.Load()
	if fs.Changed("host") {
		cfg.Host = opts.host
	}
	if fs.Changed("port") {
		cfg.Port = opts.port
	}

	cmd := "serve"
	if fs.NArg() > 0 {
		cmd = fs.Arg(0)
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(cfg)
	case "migrate":
		err = migrate(cfg, out)
	case "token":
		err = mintToken(cfg, opts, out)
	default:
		fmt.Fprintf(out, "promptrelay: %v %q\n", errUnknownCmd, cmd) //nolint:errcheck
		return 2
	}
	if err != nil {
		fmt.Fprintf(out, "promptrelay %s: %v\n", cmd, err) //nolint:errcheck
		return 1
	}
	return 0
}

// serve runs the HTTP server until SIGINT/SIGTERM, then drains and exits.
func serve(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println(version.String())
	logProviders(cfg)

	deps, db, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Host
	srvCfg.Port = cfg.Port
	var srv *server.Server
	if db != nil {
		srv = server.NewServer(api.NewRouter(deps), srvCfg, db)
	} else {
		srv = server.NewServer(api.NewRouter(deps), srvCfg)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildDeps wires the services behind the router. The returned *sql.DB is nil
// when the usage log is disabled; otherwise the caller owns closing it.
func buildDeps(ctx context.Context, cfg config.Config) (api.Deps, *sql.DB, error) {
	pool := quote.Default()
	if cfg.QuotesFile != "" {
		p, err := quote.LoadFile(cfg.QuotesFile)
		if err != nil {
			return api.Deps{}, nil, err
		}
		pool = p
	}

	bus := eventbus.New()
	router := llm.NewRouterFromCredentials(cfg.Credentials(), cfg.RouterOptions())

	deps := api.Deps{
		Replies:            assistant.NewService(router, bus),
		Quotes:             pool,
		JWTSecret:          []byte(cfg.AuthJWTSecret),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitMax:       cfg.RateLimitMax,
		RateLimitWindow:    cfg.RateLimitWindow,
		StaticDir:          cfg.StaticDir,
	}

	if cfg.AuditDBPath == "" {
		return deps, nil, nil
	}
	db, err := openAuditDB(ctx, cfg.AuditDBPath)
	if err != nil {
		return api.Deps{}, nil, err
	}
	usage := audit.NewUsageService(db)
	go audit.NewRecorder(usage).Start(ctx, bus)
	log.Printf("usage log enabled at %s", cfg.AuditDBPath)

	if cfg.AuthJWTSecret != "" {
		deps.Usage = usage
	} else {
		log.Printf("GET /api/usage disabled: %v", errNoSecret)
	}
	return deps, db, nil
}

func openAuditDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := sqlite.MigrateUp(ctx, db); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	return db, nil
}

// logProviders reports which provider will answer, with keys masked.
func logProviders(cfg config.Config) {
	creds := cfg.Credentials()
	switch creds.Select() {
	case llm.ProviderOpenAI:
		log.Printf("provider: openai (key %s, model %s)", config.MaskKey(cfg.OpenAIKey), cfg.OpenAIModel)
	case llm.ProviderGroq:
		log.Printf("provider: groq (key %s, model %s)", config.MaskKey(cfg.GroqKey), cfg.GroqModel)
	default:
		log.Printf("WARNING: neither OPENAI_API_KEY nor GROQ_API_KEY is set; /api/ai will answer %q", assistant.PlaceholderReply)
	}
}

func migrate(cfg config.Config, out io.Writer) error {
	if cfg.AuditDBPath == "" {
		return errNoAuditDB
	}
	ctx := context.Background()
	db, err := openAuditDB(ctx, cfg.AuditDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := sqlite.MigrationVersion(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "usage log schema at version %d\n", v) //nolint:errcheck
	return nil
}

func mintToken(cfg config.Config, opts options, out io.Writer) error {
	if cfg.AuthJWTSecret == "" {
		return errNoSecret
	}
	if opts.subject == "" {
		return errNoSubject
	}
	token, err := pkgauth.GenerateToken([]byte(cfg.AuthJWTSecret), opts.subject, opts.ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, token) //nolint:errcheck
	return nil
}

func printHelp(out io.Writer) {
	helpText := `promptrelay - chat prompt relay to OpenAI / Groq

Usage:
  promptrelay [command] [options]

Commands:
  serve        Start the HTTP server (default)
  migrate      Apply usage log migrations (needs AUDIT_DB_PATH)
  token        Mint a bearer token (needs AUTH_JWT_SECRET)

Options:
  --env-file   Environment file to load (default ".env")
  --host       Listen host (overrides HOST)
  --port       Listen port (overrides PORT)
  --subject    Token subject (token)
  --ttl        Token lifetime (token, default 24h)
  --version    Show version information
  -h, --help   Show this help message

Examples:
  promptrelay --port 3000
  promptrelay migrate
  promptrelay token --subject alice --ttl 1h`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
