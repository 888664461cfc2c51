package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"inkwell/internal/client/models"
)

// cognitoAPI is the subset of the Cognito IDP client used here; tests provide
// a fake implementation.
type cognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error)
	GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error)
	GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error)
}

// CognitoProvider implements Provider on top of an AWS Cognito user pool.
// Requests are unsigned: the user pool client flows used here require no AWS
// credentials.
type CognitoProvider struct {
	api      cognitoAPI
	clientID string
}

// NewCognitoProvider builds a provider for the given region and user pool
// app client.
func NewCognitoProvider(ctx context.Context, region, clientID string) (*CognitoProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &CognitoProvider{
		api:      cognitoidentityprovider.NewFromConfig(cfg),
		clientID: clientID,
	}, nil
}

func (p *CognitoProvider) SignIn(ctx context.Context, username, password string) (*Session, error) {
	out, err := p.api.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}

	if out.ChallengeName == types.ChallengeNameTypeNewPasswordRequired {
		return nil, ErrNewPasswordRequired
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("sign in: unexpected challenge %q", out.ChallengeName)
	}

	return &Session{
		Username:     username,
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
	}, nil
}

func (p *CognitoProvider) Refresh(ctx context.Context, username, refreshToken string) (*Session, error) {
	out, err := p.api.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	if out.AuthenticationResult == nil {
		return nil, fmt.Errorf("refresh: empty authentication result")
	}

	sess := &Session{
		Username:     username,
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		AccessToken:  aws.ToString(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
	}
	// Cognito does not rotate the refresh token on this flow.
	if sess.RefreshToken == "" {
		sess.RefreshToken = refreshToken
	}
	return sess, nil
}

func (p *CognitoProvider) SignUp(ctx context.Context, email, password string) error {
	_, err := p.api.SignUp(ctx, &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
		Password: aws.String(password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (p *CognitoProvider) ConfirmSignUp(ctx context.Context, username, code string) error {
	_, err := p.api.ConfirmSignUp(ctx, &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (p *CognitoProvider) ResendConfirmationCode(ctx context.Context, username string) error {
	_, err := p.api.ResendConfirmationCode(ctx, &cognitoidentityprovider.ResendConfirmationCodeInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(username),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (p *CognitoProvider) FetchUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	out, err := p.api.GetUser(ctx, &cognitoidentityprovider.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, mapError(err)
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, a := range out.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}

	return &models.AuthUser{
		Username:   aws.ToString(out.Username),
		Email:      attrs["email"],
		Attributes: attrs,
	}, nil
}

func (p *CognitoProvider) SignOut(ctx context.Context, accessToken string) error {
	_, err := p.api.GlobalSignOut(ctx, &cognitoidentityprovider.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// mapError translates Cognito exceptions into the package's sentinel errors.
// Unrecognized errors pass through wrapped so the provider message stays
// visible to the user.
func mapError(err error) error {
	var (
		notAuthorized   *types.NotAuthorizedException
		userNotFound    *types.UserNotFoundException
		notConfirmed    *types.UserNotConfirmedException
		resetRequired   *types.PasswordResetRequiredException
		codeMismatch    *types.CodeMismatchException
		codeExpired     *types.ExpiredCodeException
		invalidPassword *types.InvalidPasswordException
		usernameExists  *types.UsernameExistsException
	)

	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &userNotFound):
		return ErrInvalidCredentials
	case errors.As(err, &notConfirmed):
		return ErrUserNotConfirmed
	case errors.As(err, &resetRequired):
		return ErrNewPasswordRequired
	case errors.As(err, &codeMismatch):
		return ErrInvalidCode
	case errors.As(err, &codeExpired):
		return ErrCodeExpired
	case errors.As(err, &invalidPassword):
		return ErrPasswordPolicy
	case errors.As(err, &usernameExists):
		return ErrAccountExists
	default:
		return fmt.Errorf("identity provider: %w", err)
	}
}
