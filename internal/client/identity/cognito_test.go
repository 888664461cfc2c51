package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	initiateOut *cognitoidentityprovider.InitiateAuthOutput
	initiateErr error
	signUpErr   error
	confirmErr  error
	resendErr   error
	getUserOut  *cognitoidentityprovider.GetUserOutput
	getUserErr  error
	signOutErr  error

	lastAuthFlow   types.AuthFlowType
	lastAuthParams map[string]string
}

func (f *fakeCognito) InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error) {
	f.lastAuthFlow = params.AuthFlow
	f.lastAuthParams = params.AuthParameters
	return f.initiateOut, f.initiateErr
}

func (f *fakeCognito) SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error) {
	return &cognitoidentityprovider.SignUpOutput{}, f.signUpErr
}

func (f *fakeCognito) ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error) {
	return &cognitoidentityprovider.ConfirmSignUpOutput{}, f.confirmErr
}

func (f *fakeCognito) ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error) {
	return &cognitoidentityprovider.ResendConfirmationCodeOutput{}, f.resendErr
}

func (f *fakeCognito) GetUser(ctx context.Context, params *cognitoidentityprovider.GetUserInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GetUserOutput, error) {
	return f.getUserOut, f.getUserErr
}

func (f *fakeCognito) GlobalSignOut(ctx context.Context, params *cognitoidentityprovider.GlobalSignOutInput, _ ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.GlobalSignOutOutput, error) {
	return &cognitoidentityprovider.GlobalSignOutOutput{}, f.signOutErr
}

func newTestProvider(f *fakeCognito) *CognitoProvider {
	return &CognitoProvider{api: f, clientID: "client-123"}
}

func TestSignIn_ReturnsSession(t *testing.T) {
	f := &fakeCognito{initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			IdToken:      aws.String("id"),
			AccessToken:  aws.String("access"),
			RefreshToken: aws.String("refresh"),
		},
	}}

	sess, err := newTestProvider(f).SignIn(context.Background(), "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, types.AuthFlowTypeUserPasswordAuth, f.lastAuthFlow)
	require.Equal(t, "alice", f.lastAuthParams["USERNAME"])
	require.Equal(t, &Session{Username: "alice", IDToken: "id", AccessToken: "access", RefreshToken: "refresh"}, sess)
}

func TestSignIn_NewPasswordChallenge(t *testing.T) {
	f := &fakeCognito{initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
		ChallengeName: types.ChallengeNameTypeNewPasswordRequired,
	}}

	_, err := newTestProvider(f).SignIn(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, ErrNewPasswordRequired)
}

func TestSignIn_MapsProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not authorized", &types.NotAuthorizedException{}, ErrInvalidCredentials},
		{"unknown user", &types.UserNotFoundException{}, ErrInvalidCredentials},
		{"not confirmed", &types.UserNotConfirmedException{}, ErrUserNotConfirmed},
		{"reset required", &types.PasswordResetRequiredException{}, ErrNewPasswordRequired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeCognito{initiateErr: tc.in}
			_, err := newTestProvider(f).SignIn(context.Background(), "alice", "pw")
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSignUp_MapsValidationErrors(t *testing.T) {
	p := newTestProvider(&fakeCognito{signUpErr: &types.InvalidPasswordException{}})
	require.ErrorIs(t, p.SignUp(context.Background(), "a@b.c", "weak"), ErrPasswordPolicy)

	p = newTestProvider(&fakeCognito{signUpErr: &types.UsernameExistsException{}})
	require.ErrorIs(t, p.SignUp(context.Background(), "a@b.c", "pw"), ErrAccountExists)
}

func TestConfirmSignUp_MapsCodeErrors(t *testing.T) {
	p := newTestProvider(&fakeCognito{confirmErr: &types.CodeMismatchException{}})
	require.ErrorIs(t, p.ConfirmSignUp(context.Background(), "alice", "000000"), ErrInvalidCode)

	p = newTestProvider(&fakeCognito{confirmErr: &types.ExpiredCodeException{}})
	require.ErrorIs(t, p.ConfirmSignUp(context.Background(), "alice", "000000"), ErrCodeExpired)
}

func TestResend_UnknownIdentifier(t *testing.T) {
	p := newTestProvider(&fakeCognito{resendErr: &types.UserNotFoundException{}})
	require.ErrorIs(t, p.ResendConfirmationCode(context.Background(), "ghost"), ErrInvalidCredentials)
}

func TestRefresh_KeepsRefreshTokenWhenNotRotated(t *testing.T) {
	f := &fakeCognito{initiateOut: &cognitoidentityprovider.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			IdToken:     aws.String("id2"),
			AccessToken: aws.String("access2"),
		},
	}}

	sess, err := newTestProvider(f).Refresh(context.Background(), "alice", "refresh-1")
	require.NoError(t, err)
	require.Equal(t, types.AuthFlowTypeRefreshTokenAuth, f.lastAuthFlow)
	require.Equal(t, "refresh-1", f.lastAuthParams["REFRESH_TOKEN"])
	require.Equal(t, "refresh-1", sess.RefreshToken)
	require.Equal(t, "id2", sess.IDToken)
}

func TestFetchUser_MapsAttributes(t *testing.T) {
	f := &fakeCognito{getUserOut: &cognitoidentityprovider.GetUserOutput{
		Username: aws.String("alice"),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String("alice@example.com")},
			{Name: aws.String("sub"), Value: aws.String("uuid-1")},
		},
	}}

	user, err := newTestProvider(f).FetchUser(context.Background(), "access")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)
	require.Equal(t, "uuid-1", user.Attributes["sub"])
}

func TestMapError_WrapsUnknownErrors(t *testing.T) {
	in := errors.New("throttled")
	out := mapError(in)
	require.ErrorIs(t, out, in)
	require.NotErrorIs(t, out, ErrInvalidCredentials)
}
