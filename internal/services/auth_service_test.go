package services

import (
	"net/url"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/email"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/utils"
)

func (suite *ServiceTestSuite) signup(emailAddr, password string) *models.User {
	user, err := suite.auth.Signup(suite.ctx, SignupInput{FullName: "Ada Lovelace", Email: emailAddr, Password: password})
	suite.Require().NoError(err)
	return user
}

func (suite *ServiceTestSuite) TestSignup() {
	user := suite.signup("Ada@Example.com", "supersecret")

	suite.Equal("ada@example.com", user.Email)
	suite.Equal(models.RoleClient, user.Role)
	suite.True(user.IsActive)
	suite.Equal(models.DefaultNotificationPreferences(), user.NotificationPreferences)
	suite.NotEqual("supersecret", user.PasswordHash)
	suite.EqualValues(1, suite.countActivity("USER_SIGNUP"))

	sent := suite.mailer.Last()
	suite.Require().NotNil(sent)
	suite.Equal(email.TemplateWelcome, sent.Template)
	suite.Equal("ada@example.com", sent.To)
}

func (suite *ServiceTestSuite) TestSignup_Rejections() {
	suite.signup("ada@example.com", "supersecret")

	_, err := suite.auth.Signup(suite.ctx, SignupInput{FullName: "Again", Email: "ADA@example.com", Password: "supersecret"})
	suite.ErrorIs(err, ErrEmailTaken)

	_, err = suite.auth.Signup(suite.ctx, SignupInput{FullName: "Root", Email: "root@example.com", Password: "supersecret", Role: models.RoleAdmin})
	suite.ErrorIs(err, ErrInvalidRole)

	_, err = suite.auth.Signup(suite.ctx, SignupInput{FullName: "Shorty", Email: "short@example.com", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)

	suite.EqualValues(1, suite.countActivity("USER_SIGNUP"))
}

func (suite *ServiceTestSuite) TestCreateAdmin() {
	admin, err := suite.auth.CreateAdmin(suite.ctx, "Root", "root@example.com", "supersecret")
	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, admin.Role)
	suite.Empty(suite.mailer.Sent)
}

func (suite *ServiceTestSuite) TestLogin() {
	suite.signup("ada@example.com", "supersecret")

	user, err := suite.auth.Login(suite.ctx, LoginInput{Email: "ADA@example.com", Password: "supersecret"})
	suite.Require().NoError(err)
	suite.Equal("ada@example.com", user.Email)

	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "ada@example.com", Password: "wrongpassword"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "nobody@example.com", Password: "supersecret"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.repos.Users.Deactivate(user.ID, time.Now())
	suite.Require().NoError(err)
	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "ada@example.com", Password: "supersecret"})
	suite.ErrorIs(err, ErrAccountDeactivated)
}

func (suite *ServiceTestSuite) resetTokenFromMail() string {
	sent := suite.mailer.Last()
	suite.Require().NotNil(sent)
	suite.Require().Equal(email.TemplatePasswordReset, sent.Template)
	link, err := url.Parse(sent.Data["ResetURL"].(string))
	suite.Require().NoError(err)
	return link.Query().Get("token")
}

func (suite *ServiceTestSuite) TestForgotAndResetPassword() {
	user := suite.signup("ada@example.com", "supersecret")
	sentBefore := len(suite.mailer.Sent)

	suite.Require().NoError(suite.auth.ForgotPassword(suite.ctx, "nobody@example.com"))
	suite.Len(suite.mailer.Sent, sentBefore)

	suite.Require().NoError(suite.auth.ForgotPassword(suite.ctx, "ada@example.com"))
	token := suite.resetTokenFromMail()
	suite.Len(token, 64)

	stored, err := suite.repos.Users.FindByID(user.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.ResetTokenHash)
	suite.Equal(utils.HashToken(token), *stored.ResetTokenHash)

	suite.Require().NoError(suite.auth.ResetPassword(suite.ctx, token, "brandnewpass"))
	suite.ErrorIs(suite.auth.ResetPassword(suite.ctx, token, "anotherpass"), ErrInvalidResetToken)

	_, err = suite.auth.Login(suite.ctx, LoginInput{Email: "ada@example.com", Password: "brandnewpass"})
	suite.NoError(err)
	suite.EqualValues(1, suite.countActivity("PASSWORD_RESET"))
	suite.Equal(email.TemplatePasswordChanged, suite.mailer.Last().Template)
}

func (suite *ServiceTestSuite) TestResetPassword_ExpiredToken() {
	user := suite.signup("ada@example.com", "supersecret")
	suite.Require().NoError(suite.auth.ForgotPassword(suite.ctx, "ada@example.com"))
	token := suite.resetTokenFromMail()

	suite.Require().NoError(suite.repos.Users.UpdateColumns(user.ID, map[string]interface{}{
		"reset_token_expiry": time.Now().UTC().Add(-time.Minute),
	}))

	suite.ErrorIs(suite.auth.ResetPassword(suite.ctx, token, "brandnewpass"), ErrInvalidResetToken)
}

func (suite *ServiceTestSuite) TestForgotPassword_InactiveAccountIsIgnored() {
	user := suite.signup("ada@example.com", "supersecret")
	_, err := suite.repos.Users.Deactivate(user.ID, time.Now())
	suite.Require().NoError(err)
	sentBefore := len(suite.mailer.Sent)

	suite.Require().NoError(suite.auth.ForgotPassword(suite.ctx, "ada@example.com"))
	suite.Len(suite.mailer.Sent, sentBefore)
}

func (suite *ServiceTestSuite) TestChangePassword() {
	user := suite.signup("ada@example.com", "supersecret")
	sess := suite.sessionFor(user)

	suite.ErrorIs(suite.auth.ChangePassword(suite.ctx, sess, "wrongpassword", "brandnewpass"), ErrWrongPassword)
	suite.Require().NoError(suite.auth.ChangePassword(suite.ctx, sess, "supersecret", "brandnewpass"))

	_, err := suite.auth.Login(suite.ctx, LoginInput{Email: "ada@example.com", Password: "brandnewpass"})
	suite.NoError(err)
}
