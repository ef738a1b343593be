package services

import (
	"strings"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
)

func (suite *ServiceTestSuite) TestDeactivate_LastAdminIsKept() {
	admin := suite.createUser("admin@example.com", models.RoleAdmin)

	err := suite.users.Deactivate(suite.ctx, suite.sessionFor(admin))
	suite.ErrorIs(err, policy.ErrLastAdmin)

	stored, err := suite.repos.Users.FindByID(admin.ID)
	suite.Require().NoError(err)
	suite.True(stored.IsActive)
	suite.EqualValues(0, suite.countActivity("USER_DEACTIVATED"))
}

func (suite *ServiceTestSuite) TestDeactivateUser() {
	admin := suite.createUser("admin@example.com", models.RoleAdmin)
	second := suite.createUser("second@example.com", models.RoleAdmin)
	client := suite.createUser("client@example.com", models.RoleClient)

	suite.ErrorIs(suite.users.DeactivateUser(suite.ctx, suite.sessionFor(client), admin.ID), policy.ErrForbidden)

	suite.Require().NoError(suite.users.DeactivateUser(suite.ctx, suite.sessionFor(admin), second.ID))
	suite.Require().NoError(suite.users.DeactivateUser(suite.ctx, suite.sessionFor(admin), second.ID))
	suite.EqualValues(1, suite.countActivity("USER_DEACTIVATED"))

	suite.ErrorIs(suite.users.Deactivate(suite.ctx, suite.sessionFor(admin)), policy.ErrLastAdmin)
	suite.ErrorIs(suite.users.DeactivateUser(suite.ctx, suite.sessionFor(admin), "missing"), ErrUserNotFound)
}

func (suite *ServiceTestSuite) TestUpdatePreferences_OnlyTouchesGivenSwitches() {
	user := suite.createUser("client@example.com", models.RoleClient)
	off := false

	prefs, err := suite.users.UpdatePreferences(suite.ctx, suite.sessionFor(user), PreferencesPatch{NotifyWeeklyDigest: &off})
	suite.Require().NoError(err)

	suite.False(prefs.NotifyWeeklyDigest)
	suite.True(prefs.NotifyEmailUpdates)
	suite.True(prefs.NotifyProjectActivity)
	suite.True(prefs.NotifyNewMessages)

	unchanged, err := suite.users.UpdatePreferences(suite.ctx, suite.sessionFor(user), PreferencesPatch{})
	suite.Require().NoError(err)
	suite.Equal(prefs, unchanged)
}

func (suite *ServiceTestSuite) TestUploadProfileImage() {
	user := suite.createUser("client@example.com", models.RoleClient)
	sess := suite.sessionFor(user)

	file, err := suite.users.UploadProfileImage(suite.ctx, sess, Upload{
		Filename:    "Me.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        strings.NewReader("data"),
	})
	suite.Require().NoError(err)
	suite.True(suite.store.Has(file.Filename))
	suite.True(strings.HasPrefix(file.Filename, models.FolderProfile+"/"))
	suite.True(strings.HasSuffix(file.Filename, ".png"))

	stored, err := suite.repos.Users.FindByID(user.ID)
	suite.Require().NoError(err)
	suite.Equal(file.URL, stored.ProfileImageURL)

	_, err = suite.users.UploadProfileImage(suite.ctx, sess, Upload{
		Filename: "notes.txt", ContentType: "text/plain", Size: 4, Body: strings.NewReader("data"),
	})
	suite.ErrorIs(err, ErrInvalidFileType)

	_, err = suite.users.UploadProfileImage(suite.ctx, sess, Upload{
		Filename: "huge.png", ContentType: "image/png", Size: 6 << 20, Body: strings.NewReader("data"),
	})
	suite.ErrorIs(err, ErrFileTooLarge)
}
