package services

import (
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
)

func (suite *ServiceTestSuite) TestCreatePalette_RecordsActivity() {
	designer := suite.createUser("designer@example.com", models.RoleDesigner)
	project := suite.createProject("client@example.com", nil)
	primary := "#112233"

	palette, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(designer), project, PaletteInput{
		Name:         "Brand v1",
		PrimaryColor: &primary,
	})
	suite.Require().NoError(err)
	suite.False(palette.IsApproved)
	suite.Equal(project.ID, palette.ProjectID)

	entries, err := suite.activity.List(suite.ctx, suite.sessionFor(designer), ActivityQuery{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("ASSET_GENERATED", entries[0].ActionType)
	suite.Equal(palette.ID, entries[0].EntityID)
	suite.Equal(project.ID, *entries[0].ProjectID)
}

func (suite *ServiceTestSuite) TestCreatePalette_RollsBackWithoutActivity() {
	designer := suite.createUser("designer@example.com", models.RoleDesigner)
	project := suite.createProject("client@example.com", nil)
	suite.Require().NoError(suite.db.Migrator().DropTable(&models.ActivityLog{}))

	_, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(designer), project, PaletteInput{Name: "Brand v1"})
	suite.Error(err)

	palettes, err := suite.assets.ListPalettes(suite.ctx, project)
	suite.Require().NoError(err)
	suite.Empty(palettes)
}

func (suite *ServiceTestSuite) TestApprovePalette_IsIdempotent() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)

	palette, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(lead), project, PaletteInput{Name: "Brand v1"})
	suite.Require().NoError(err)

	for i := 0; i < 2; i++ {
		approved, err := suite.assets.ApprovePalette(suite.ctx, suite.sessionFor(client), palette.ID)
		suite.Require().NoError(err)
		suite.True(approved.IsApproved)
	}

	suite.EqualValues(1, suite.countActivity("ASSET_APPROVED"))
	notifications := suite.notificationsFor(lead)
	suite.Require().Len(notifications, 1)
	suite.Equal(models.NotificationAssetApproved, notifications[0].Type)
	suite.Equal(client.ID, *notifications[0].TriggeredByID)
}

func (suite *ServiceTestSuite) TestApprovePalette_HiddenFromOtherClients() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	outsider := suite.createUser("outsider@example.com", models.RoleClient)
	project := suite.createProject("client@example.com", lead)

	palette, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(lead), project, PaletteInput{Name: "Brand v1"})
	suite.Require().NoError(err)

	_, err = suite.assets.ApprovePalette(suite.ctx, suite.sessionFor(outsider), palette.ID)
	suite.ErrorIs(err, ErrPaletteNotFound)

	_, err = suite.assets.ApprovePalette(suite.ctx, suite.sessionFor(lead), "missing")
	suite.ErrorIs(err, ErrPaletteNotFound)
	suite.EqualValues(0, suite.countActivity("ASSET_APPROVED"))
}

func (suite *ServiceTestSuite) TestApprovePalette_LeadApprovingIsNotNotified() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	project := suite.createProject("client@example.com", lead)

	palette, err := suite.assets.CreatePalette(suite.ctx, suite.sessionFor(lead), project, PaletteInput{Name: "Brand v1"})
	suite.Require().NoError(err)
	_, err = suite.assets.ApprovePalette(suite.ctx, suite.sessionFor(lead), palette.ID)
	suite.Require().NoError(err)

	suite.Empty(suite.notificationsFor(lead))
	suite.EqualValues(1, suite.countActivity("ASSET_APPROVED"))
}

func (suite *ServiceTestSuite) TestTypography() {
	designer := suite.createUser("designer@example.com", models.RoleDesigner)
	sess := suite.sessionFor(designer)
	project := suite.createProject("client@example.com", nil)
	other := suite.createProject("other@example.com", nil)

	typography, err := suite.assets.CreateTypography(suite.ctx, sess, project, TypographyInput{
		Name: "Editorial", HeadingFont: "Playfair Display", BodyFont: "Inter",
	})
	suite.Require().NoError(err)

	_, err = suite.assets.ApproveTypography(suite.ctx, sess, other, typography.ID)
	suite.ErrorIs(err, ErrTypographyMismatch)
	suite.ErrorIs(suite.assets.DeleteTypography(suite.ctx, sess, other, typography.ID), ErrTypographyMismatch)
	_, err = suite.assets.ApproveTypography(suite.ctx, sess, project, "missing")
	suite.ErrorIs(err, ErrTypographyNotFound)

	body := "Source Serif"
	same := "Editorial"
	updated, err := suite.assets.UpdateTypography(suite.ctx, sess, project, typography.ID, TypographyPatch{BodyFont: &body, Name: &same})
	suite.Require().NoError(err)
	suite.Equal("Source Serif", updated.BodyFont)
	suite.Equal("Playfair Display", updated.HeadingFont)
	suite.EqualValues(1, suite.countActivity("ASSET_UPDATED"))

	_, err = suite.assets.UpdateTypography(suite.ctx, sess, project, typography.ID, TypographyPatch{BodyFont: &body})
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("ASSET_UPDATED"))

	suite.Require().NoError(suite.assets.DeleteTypography(suite.ctx, sess, project, typography.ID))
	suite.ErrorIs(suite.assets.DeleteTypography(suite.ctx, sess, project, typography.ID), ErrTypographyNotFound)
	suite.EqualValues(1, suite.countActivity("ASSET_DELETED"))
}

func (suite *ServiceTestSuite) TestCreateProject() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)

	_, err := suite.projects.Create(suite.ctx, suite.sessionFor(client), CreateProjectInput{ProjectName: "Mine", CreatorEmail: client.Email})
	suite.ErrorIs(err, policy.ErrForbidden)

	_, err = suite.projects.Create(suite.ctx, suite.sessionFor(lead), CreateProjectInput{
		ProjectName: "Launch", CreatorEmail: client.Email, LeadStrategistID: &client.ID,
	})
	suite.ErrorIs(err, ErrInvalidStrategist)

	project, err := suite.projects.Create(suite.ctx, suite.sessionFor(lead), CreateProjectInput{
		ProjectName: "Launch", CreatorEmail: client.Email, LeadStrategistID: &lead.ID,
	})
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("PROJECT_CREATED"))

	visible, err := suite.projects.List(suite.ctx, suite.sessionFor(client))
	suite.Require().NoError(err)
	suite.Require().Len(visible, 1)
	suite.Equal(project.ID, visible[0].ID)

	outsider := suite.createUser("outsider@example.com", models.RoleClient)
	visible, err = suite.projects.List(suite.ctx, suite.sessionFor(outsider))
	suite.Require().NoError(err)
	suite.Empty(visible)

	_, err = suite.projects.Get(suite.ctx, suite.sessionFor(outsider), project.ID)
	suite.ErrorIs(err, policy.ErrForbidden)
	_, err = suite.projects.Get(suite.ctx, suite.sessionFor(lead), "missing")
	suite.ErrorIs(err, ErrProjectNotFound)
}
