package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nhle/eventcal/internal/app"
	"github.com/nhle/eventcal/internal/calendar"
	"github.com/nhle/eventcal/internal/credential"
	"github.com/nhle/eventcal/internal/logger"
	"github.com/nhle/eventcal/internal/model"
	"github.com/nhle/eventcal/internal/store"
	evsync "github.com/nhle/eventcal/internal/sync"
	"github.com/nhle/eventcal/internal/theme"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
)

type flagConfig struct {
	configPath         string
	month              string
	export             string
	initConfig         bool
	setRedisPassword   bool
	clearRedisPassword bool
	showVersion        bool
}

func main() {
	v := model.NewViper()
	flags, err := parseFlags(v, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flags.showVersion {
		fmt.Printf("eventcal %s (commit: %s)\n", version, commit)
		return
	}

	if err := run(v, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(v *viper.Viper, args []string) (flagConfig, error) {
	var cfg flagConfig

	fs := pflag.NewFlagSet("eventcal", pflag.ContinueOnError)
	fs.StringVarP(&cfg.configPath, "config", "c", model.DefaultConfigPath(), "Path to config file")
	fs.String("backend", "", "Storage backend: file, sqlite or redis (overrides config)")
	fs.String("week-start", "", "First day of the week: sunday or monday (overrides config)")
	fs.String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	fs.StringVarP(&cfg.month, "month", "m", "", "Month to open or export, as YYYY-MM (default: current month)")
	fs.StringVarP(&cfg.export, "export", "e", "", "Export the month as json, csv or ics and exit")
	fs.BoolVar(&cfg.initConfig, "init-config", false, "Write the effective configuration to --config and exit")
	fs.BoolVar(&cfg.setRedisPassword, "set-redis-password", false, "Read the redis password from stdin into the keyring and exit")
	fs.BoolVar(&cfg.clearRedisPassword, "clear-redis-password", false, "Remove the redis password from the keyring and exit")
	fs.BoolVarP(&cfg.showVersion, "version", "v", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	bindings := map[string]string{
		"storage.backend":     "backend",
		"calendar.week_start": "week-start",
		"log.level":           "log-level",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return cfg, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	return cfg, nil
}

func run(v *viper.Viper, flags flagConfig) error {
	cfg, err := model.LoadConfigWith(v, flags.configPath)
	if err != nil {
		return err
	}

	switch {
	case flags.initConfig:
		if err := model.SaveConfig(flags.configPath, cfg); err != nil {
			return err
		}
		fmt.Println(flags.configPath)
		return nil
	case flags.setRedisPassword:
		return setRedisPassword(os.Stdin)
	case flags.clearRedisPassword:
		if err := credential.Delete(credential.RedisPasswordKey); err != nil {
			return err
		}
		fmt.Println("redis password removed")
		return nil
	}

	month := time.Now()
	if flags.month != "" {
		month, err = time.ParseInLocation("2006-01", flags.month, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --month %q: expected YYYY-MM", flags.month)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if flags.export != "" {
		format, err := calendar.ParseFormat(flags.export)
		if err != nil {
			return err
		}
		log := logger.NewWriter(os.Stderr, cfg.Log.Level)
		return export(ctx, cfg, log, month, format)
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info("eventcal starting",
		slog.String("version", version),
		slog.String("backend", cfg.Storage.Backend),
		slog.String("week_start", cfg.Calendar.WeekStart),
	)

	theme.Apply(cfg.Display.Theme)

	cal, st, err := openCalendar(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	poller := evsync.New(cal, cfg.Storage.PollInterval(), log)
	defer poller.Stop()

	m := app.New(cal, app.Options{
		Config:     cfg,
		ConfigPath: flags.configPath,
		Logger:     log,
		Start:      month,
		Now:        time.Now,
		Backend:    cfg.Storage.Backend,
		Poller:     poller,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running application: %w", err)
	}

	log.Info("eventcal exiting")
	return nil
}

// openCalendar resolves credentials, opens the configured store and wraps
// it in a Calendar. The caller loads the events.
func openCalendar(ctx context.Context, cfg *model.AppConfig, log *slog.Logger) (*calendar.Calendar, store.Store, error) {
	var password string
	if cfg.Storage.Backend == model.BackendRedis {
		var err error
		password, err = credential.RedisPassword()
		if err != nil {
			log.Warn("redis password unavailable, connecting without one", logger.Err(err))
		}
	}

	st, err := store.Open(ctx, cfg.Storage, password)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}

	cal := calendar.New(log, st, calendar.WithDefaultColor(cfg.Calendar.DefaultColor))
	return cal, st, nil
}

func export(ctx context.Context, cfg *model.AppConfig, log *slog.Logger, month time.Time, format calendar.Format) error {
	cal, st, err := openCalendar(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := cal.Load(ctx); err != nil {
		return err
	}

	path, err := cal.Export(month, format, cfg.Export.Dir)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func setRedisPassword(r io.Reader) error {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return errors.New("empty password")
	}
	if err := credential.Set(credential.RedisPasswordKey, password); err != nil {
		return err
	}
	fmt.Println("redis password stored")
	return nil
}
