package identity

import (
	"context"
	"errors"
	"fmt"

	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"sellerhub/internal/domain"
)

type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// FirebaseOptions selects service-account credentials; JSON wins over File.
// With neither set, Application Default Credentials are used.
type FirebaseOptions struct {
	ProjectID       string
	CredentialsJSON string
	CredentialsFile string
}

func DialFirebase(ctx context.Context, o FirebaseOptions) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	switch {
	case o.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(o.CredentialsJSON)))
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: o.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}
	return NewFirebaseVerifier(client), nil
}

func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, ErrMissingToken
	}
	tok, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return domain.Principal{}, errors.Join(ErrInvalidToken, err)
	}
	p := domain.Principal{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		p.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		p.Name = name
	}
	return p, nil
}
