// devtoken mints identity tokens for running the workspace service locally
// without an identity provider.
//
//	devtoken --key dev.pem --init             # create a signing key
//	devtoken --key dev.pem --jwks > jwks.json # publish it (WORKSPACE_JWKS_FILE)
//	devtoken --key dev.pem --sub u-1 --email ana@example.com --name Ana
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/hypolab/workspace/pkg/cryptox"
	"github.com/hypolab/workspace/pkg/jwtx"
	"github.com/spf13/pflag"
)

type options struct {
	keyPath  string
	kid      string
	initKey  bool
	jwks     bool
	subject  string
	email    string
	name     string
	issuer   string
	audience []string
	ttl      time.Duration
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var o options

	flags := pflag.NewFlagSet("devtoken", pflag.ContinueOnError)
	flags.StringVar(&o.keyPath, "key", "dev-identity.pem", "Ed25519 PKCS8 PEM signing key")
	flags.StringVar(&o.kid, "kid", "dev", "key id placed in the token header and JWKS")
	flags.BoolVar(&o.initKey, "init", false, "generate the signing key at --key (refuses to overwrite)")
	flags.BoolVar(&o.jwks, "jwks", false, "print the public JWKS instead of a token")
	flags.StringVar(&o.subject, "sub", "", "subject (user id)")
	flags.StringVar(&o.email, "email", "", "email claim")
	flags.StringVar(&o.name, "name", "", "display name claim")
	flags.StringVar(&o.issuer, "issuer", "", "iss claim; match WORKSPACE_TOKEN_ISSUER")
	flags.StringSliceVar(&o.audience, "aud", nil, "aud claim, repeatable or comma separated")
	flags.DurationVar(&o.ttl, "ttl", time.Hour, "token lifetime")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if o.initKey {
		return initKey(o.keyPath, out)
	}

	pemKey, err := os.ReadFile(o.keyPath)
	if err != nil {
		return fmt.Errorf("read key (create one with --init): %w", err)
	}
	signer, err := jwtx.NewSigner(o.kid, pemKey)
	if err != nil {
		return err
	}

	if o.jwks {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(jwtx.JWKS{Keys: []jwtx.JWK{signer.PublicJWK()}})
	}

	if o.subject == "" || o.email == "" {
		return errors.New("--sub and --email are required")
	}

	claims := jwtx.NewIdentityClaims(o.subject, o.email, o.name, o.issuer, o.audience, o.ttl, time.Now())
	token, err := signer.Sign(claims)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func initKey(path string, out io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pemKey, 0o600); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "wrote %s\n", path)
	return err
}
