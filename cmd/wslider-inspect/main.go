// wslider-inspect prints stored slider color maps and manages editor accounts.
//
//	wslider-inspect -config ./config/local.yaml show 42
//	wslider-inspect -config ./config/local.yaml adduser -email a@b.c -password secret123 -admin
//	wslider-inspect -config ./config/local.yaml addcar -title Roadster -author <user_id>
//	wslider-inspect -config ./config/local.yaml clear 42
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"wslider/internal/config"
	"wslider/internal/domain/models"
	"wslider/internal/repository"
	slidersvc "wslider/internal/services/slider_service"
	usersvc "wslider/internal/services/user_service"
	"wslider/internal/storage/postgresql"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

var errUsage = errors.New("usage: wslider-inspect [-config path] show <post_id> | clear <post_id> | addcar -title t -author id | adduser -email e -password p [-name n] [-admin]")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("wslider-inspect", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := postgresql.New(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer storage.Stop()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	repo := repository.NewRepository(storage.Pool(), nil)

	slider := slidersvc.NewSliderService(log, repo.Post, nil)

	switch cmd, rest := fs.Arg(0), fs.Args()[1:]; cmd {
	case "show":
		postID, err := postArg(rest)
		if err != nil {
			return err
		}

		post, err := slider.Post(ctx, postID)
		if err != nil {
			return err
		}
		sc, err := slider.Load(ctx, postID)
		if err != nil {
			return err
		}

		printConfig(out, post, sc)
		return nil

	case "clear":
		postID, err := postArg(rest)
		if err != nil {
			return err
		}
		if err := slider.Clear(ctx, postID); err != nil {
			return err
		}

		fmt.Fprintf(out, "cleared slider of #%d\n", postID)
		return nil

	case "addcar":
		return addCar(ctx, slider, rest, out)

	case "adduser":
		return addUser(ctx, log, repo, cfg, rest, out)

	default:
		return errUsage
	}
}

func postArg(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	postID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad post id %q: %w", args[0], err)
	}
	return postID, nil
}

func addCar(ctx context.Context, slider *slidersvc.SliderService, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("addcar", flag.ContinueOnError)
	title := fs.String("title", "", "post title")
	author := fs.String("author", "", "author user id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("addcar: -title is required")
	}
	authorID, err := uuid.Parse(*author)
	if err != nil {
		return fmt.Errorf("addcar: bad -author %q: %w", *author, err)
	}

	id, err := slider.CreateCar(ctx, *title, authorID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created car #%s %s\n", color.GreenString(strconv.FormatInt(id, 10)), *title)
	return nil
}

func addUser(ctx context.Context, log *slog.Logger, repo *repository.Repository, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	name := fs.String("name", "editor", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "login password")
	admin := fs.Bool("admin", false, "grant admin rights")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || len(*password) < 8 {
		return errors.New("adduser: -email and a -password of at least 8 characters are required")
	}

	users := usersvc.NewUserService(log, repo.User, cfg.TokenTTL, cfg.TokenSecret)
	id, err := users.Register(ctx, *name, *email, *password, *admin)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "created user %s (%s)\n", color.GreenString(id.String()), *email)
	return nil
}

func printConfig(out io.Writer, post models.Post, cfg *models.SliderConfig) {
	bold := color.New(color.Bold)
	bold.Fprintf(out, "#%d %s [%s]\n", post.ID, post.Title, post.PostType)

	if cfg.Len() == 0 {
		color.New(color.Faint).Fprintln(out, "  no colors")
		return
	}

	for i, e := range cfg.Entries() {
		marker := " "
		if i == 0 {
			marker = "*"
		}

		images := models.JoinRefs(e.Refs)
		if images == "" {
			images = "-"
		}
		fmt.Fprintf(out, "%s %s %-24s %s  %s\n", marker, swatch(e.Color), e.Name, e.Color, images)
	}
}

// swatch paints two blanks in the entry color.
func swatch(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return "  "
	}
	return color.BgRGB(r, g, b).Sprint("  ")
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}
