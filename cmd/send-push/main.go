// Command send-push sends one notification to Push.co with the credentials
// found in PUSH_API_KEY and PUSH_API_SECRET.
//
//	send-push -message "Test message." -view-mode 1 -url http://push.co/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushco/pkg/push"

	_ "github.com/joho/godotenv/autoload"
)

type config struct {
	APIKey    string `envconfig:"PUSH_API_KEY" required:"true"`
	APISecret string `envconfig:"PUSH_API_SECRET" required:"true"`
	BaseURL   string `envconfig:"PUSH_BASE_URL" default:"http://api.push.co/1.0/"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("send-push", flag.ContinueOnError)
	fs.SetOutput(stderr)

	message := fs.String("message", "", "notification text, at most 140 characters")
	notificationType := fs.String("notification-type", "", "subscription tag to target")
	viewMode := fs.Int("view-mode", int(push.ViewModeMessage), "0 message, 1 web, 2 map")
	article := fs.String("article", "", "additional text shown in message view")
	image := fs.String("image", "", "image url shown in message view")
	pageURL := fs.String("url", "", "page loaded in web view")
	latitude := fs.String("latitude", "", "latitude shown in map view")
	longitude := fs.String("longitude", "", "longitude shown in map view")
	timeout := fs.Duration("timeout", push.DefaultTimeout, "overall request timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		return fail(stderr, err)
	}

	p, err := push.New(cfg.APIKey, cfg.APISecret,
		push.WithBaseURL(cfg.BaseURL),
		push.WithTimeout(*timeout, push.DefaultConnectTimeout),
	)
	if err != nil {
		return fail(stderr, err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["message"] {
		if err := p.SetMessage(*message); err != nil {
			return fail(stderr, err)
		}
	}
	if set["notification-type"] {
		p.SetNotificationType(*notificationType)
	}
	if set["view-mode"] {
		if err := p.SetViewMode(push.ViewMode(*viewMode)); err != nil {
			return fail(stderr, err)
		}
	}
	if set["article"] {
		if err := p.SetArticle(*article); err != nil {
			return fail(stderr, err)
		}
	}
	if set["image"] {
		if err := p.SetImage(*image); err != nil {
			return fail(stderr, err)
		}
	}
	if set["url"] {
		p.SetURL(*pageURL)
	}
	if set["latitude"] {
		p.SetLatitude(*latitude)
	}
	if set["longitude"] {
		p.SetLongitude(*longitude)
	}

	result, err := p.Send(ctx)
	if err != nil {
		return fail(stderr, err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "ERROR: %s\n", err)
	return 1
}
