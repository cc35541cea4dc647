package auth

import (
	"context"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"github.com/5h3r42/savzix-store-antigravity/config"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *fbauth.Client
	projectID    string
)

// Init wires up the Firebase Admin SDK from the environment. The credentials
// JSON rides in an env var directly, no file on disk.
func Init(ctx context.Context) error {
	credsJSON, err := config.RequireEnv("FIREBASE_CREDENTIALS_JSON")
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "FIREBASE_CREDENTIALS_JSON must be set")
	}

	projectID, err = config.RequireEnv("FIREBASE_PROJECT_ID")
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	cfg := &firebase.Config{ProjectID: projectID}

	firebaseApp, err = firebase.NewApp(ctx, cfg, opt)
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to initialize Firebase app")
	}

	firebaseAuth, err = firebaseApp.Auth(ctx)
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to get Firebase Auth client")
	}
	return nil
}

// verifyIDToken checks the provider token, including revocation and
// audience, and returns the decoded token.
func verifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	if firebaseAuth == nil {
		return nil, httperr.New(httperr.KindConfiguration, "auth is not initialized")
	}
	token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, httperr.Wrap(httperr.KindAuthentication, err, "invalid or revoked ID token")
	}
	if token.Audience != projectID {
		return nil, httperr.New(httperr.KindAuthentication, "invalid token audience")
	}
	return token, nil
}
