package services

import (
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
)

func (suite *ServiceTestSuite) TestGenerateCopy() {
	writer := suite.createUser("writer@example.com", models.RoleCopywriter)
	project := suite.createProject("client@example.com", nil)
	suite.generator.options = []string{"Bold by default", "Made to be noticed", "Louder brands", "Extra"}

	snippets, err := suite.copy.Generate(suite.ctx, suite.sessionFor(writer), project, GenerateCopyInput{
		Purpose: models.PurposeTagline,
		Brief:   "Coffee roaster going national",
		Count:   3,
	})
	suite.Require().NoError(err)
	suite.Len(snippets, 3)
	suite.Equal(3, suite.generator.briefs[0].Count)
	suite.Equal(project.ProjectName, suite.generator.briefs[0].ProjectName)
	for _, sn := range snippets {
		suite.Equal(models.PurposeTagline, sn.Purpose)
		suite.False(sn.IsApproved)
	}
	suite.EqualValues(1, suite.countActivity("ASSET_GENERATED"))

	_, err = suite.copy.Generate(suite.ctx, suite.sessionFor(writer), project, GenerateCopyInput{Purpose: models.PurposeBio, Count: 50})
	suite.Require().NoError(err)
	suite.Equal(10, suite.generator.briefs[1].Count)
}

func (suite *ServiceTestSuite) TestGenerateCopy_Failures() {
	writer := suite.createUser("writer@example.com", models.RoleCopywriter)
	project := suite.createProject("client@example.com", nil)

	suite.generator.err = errors.New("upstream timeout")
	_, err := suite.copy.Generate(suite.ctx, suite.sessionFor(writer), project, GenerateCopyInput{Purpose: models.PurposeBio})
	suite.EqualError(err, "upstream timeout")

	suite.generator.err = nil
	_, err = suite.copy.Generate(suite.ctx, suite.sessionFor(writer), project, GenerateCopyInput{Purpose: models.PurposeBio})
	suite.ErrorIs(err, ErrAINoCopyGenerated)

	disabled := NewCopyService(suite.repos, suite.activity, suite.notifications, nil)
	_, err = disabled.Generate(suite.ctx, suite.sessionFor(writer), project, GenerateCopyInput{Purpose: models.PurposeBio})
	suite.ErrorIs(err, ErrAINotConfigured)

	suite.EqualValues(0, suite.countActivity("ASSET_GENERATED"))
}

func (suite *ServiceTestSuite) TestCopyLifecycle() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	writer := suite.createUser("writer@example.com", models.RoleCopywriter)
	sess := suite.sessionFor(writer)
	project := suite.createProject("client@example.com", lead)

	snippet, err := suite.copy.Create(suite.ctx, sess, project, CopyInput{Purpose: models.PurposeHeadline, Content: "Taste the roast"})
	suite.Require().NoError(err)

	content := "Taste the difference"
	updated, err := suite.copy.Update(suite.ctx, sess, project, snippet.ID, CopyPatch{Content: &content})
	suite.Require().NoError(err)
	suite.Equal(content, updated.Content)

	_, err = suite.copy.SetFavorite(suite.ctx, project, snippet.ID, true)
	suite.Require().NoError(err)
	favorites, err := suite.copy.List(suite.ctx, project, repository.CopyFilter{FavoritesOnly: true})
	suite.Require().NoError(err)
	suite.Len(favorites, 1)

	unfavorited, err := suite.copy.SetFavorite(suite.ctx, project, snippet.ID, false)
	suite.Require().NoError(err)
	suite.False(unfavorited.IsFavorite)

	_, err = suite.copy.Approve(suite.ctx, sess, project, snippet.ID)
	suite.Require().NoError(err)
	_, err = suite.copy.Approve(suite.ctx, sess, project, snippet.ID)
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("ASSET_APPROVED"))
	suite.Len(suite.notificationsFor(lead), 1)

	other := suite.createProject("other@example.com", nil)
	_, err = suite.copy.Approve(suite.ctx, sess, other, snippet.ID)
	suite.ErrorIs(err, ErrSnippetNotFound)

	suite.Require().NoError(suite.copy.Delete(suite.ctx, sess, project, snippet.ID))
	suite.ErrorIs(suite.copy.Delete(suite.ctx, sess, project, snippet.ID), ErrSnippetNotFound)
}

func (suite *ServiceTestSuite) TestPublishPost_Once() {
	writer := suite.createUser("writer@example.com", models.RoleCopywriter)
	sess := suite.sessionFor(writer)
	project := suite.createProject("client@example.com", nil)

	post, err := suite.content.Create(suite.ctx, sess, project, PostInput{PostTitle: "Launch day", Platform: "instagram"})
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusDraft, post.Status)
	suite.Nil(post.PublishedDate)

	published, err := suite.content.Publish(suite.ctx, sess, project, post.ID)
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusPublished, published.Status)
	suite.Require().NotNil(published.PublishedDate)

	again, err := suite.content.Publish(suite.ctx, sess, project, post.ID)
	suite.Require().NoError(err)
	suite.Equal(models.PostStatusPublished, again.Status)
	suite.WithinDuration(*published.PublishedDate, *again.PublishedDate, time.Second)
	suite.EqualValues(1, suite.countActivity("CONTENT_PUBLISHED"))

	_, err = suite.content.Publish(suite.ctx, sess, project, "missing")
	suite.ErrorIs(err, ErrPostNotFound)

	status := models.PostStatusPublished
	posts, err := suite.content.List(suite.ctx, project, &status)
	suite.Require().NoError(err)
	suite.Len(posts, 1)
}

func (suite *ServiceTestSuite) TestLaunchTaskCompletion() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	dev := suite.createUser("dev@example.com", models.RoleDeveloper)
	sess := suite.sessionFor(dev)
	project := suite.createProject("client@example.com", lead)

	task, err := suite.tasks.Create(suite.ctx, sess, project, CreateTaskInput{TaskName: "Point DNS"})
	suite.Require().NoError(err)
	suite.Equal(models.LaunchTaskPending, task.Status)
	suite.Equal(models.PriorityMedium, task.Priority)

	completed := models.LaunchTaskCompleted
	done, err := suite.tasks.Update(suite.ctx, sess, project, task.ID, UpdateTaskInput{Status: &completed})
	suite.Require().NoError(err)
	suite.NotNil(done.CompletedDate)
	suite.EqualValues(1, suite.countActivity("TASK_COMPLETED"))

	notifications := suite.notificationsFor(lead)
	suite.Require().Len(notifications, 1)
	suite.Equal(models.NotificationTaskCompleted, notifications[0].Type)

	_, err = suite.tasks.Update(suite.ctx, sess, project, task.ID, UpdateTaskInput{Status: &completed})
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("TASK_COMPLETED"))
	suite.EqualValues(0, suite.countActivity("TASK_UPDATED"))

	inProgress := models.LaunchTaskInProgress
	reopened, err := suite.tasks.Update(suite.ctx, sess, project, task.ID, UpdateTaskInput{Status: &inProgress})
	suite.Require().NoError(err)
	suite.Nil(reopened.CompletedDate)
	suite.EqualValues(1, suite.countActivity("TASK_UPDATED"))

	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	dated, err := suite.tasks.Update(suite.ctx, sess, project, task.ID, UpdateTaskInput{SetDueDate: true, DueDate: &due})
	suite.Require().NoError(err)
	suite.True(dated.DueDate.Equal(due))

	cleared, err := suite.tasks.Update(suite.ctx, sess, project, task.ID, UpdateTaskInput{SetDueDate: true})
	suite.Require().NoError(err)
	suite.Nil(cleared.DueDate)

	other := suite.createProject("other@example.com", nil)
	_, err = suite.tasks.Update(suite.ctx, sess, other, task.ID, UpdateTaskInput{Status: &completed})
	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *ServiceTestSuite) TestLaunchTaskCreatedCompleted() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	dev := suite.createUser("dev@example.com", models.RoleDeveloper)
	project := suite.createProject("client@example.com", lead)

	task, err := suite.tasks.Create(suite.ctx, suite.sessionFor(dev), project, CreateTaskInput{
		TaskName: "Register domain",
		Status:   models.LaunchTaskCompleted,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(task.CompletedDate)
	suite.EqualValues(1, suite.countActivity("ASSET_GENERATED"))
	suite.EqualValues(1, suite.countActivity("TASK_COMPLETED"))

	notifications := suite.notificationsFor(lead)
	suite.Require().Len(notifications, 1)
	suite.Equal(models.NotificationTaskCompleted, notifications[0].Type)

	completed := models.LaunchTaskCompleted
	_, err = suite.tasks.Update(suite.ctx, suite.sessionFor(dev), project, task.ID, UpdateTaskInput{Status: &completed})
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("TASK_COMPLETED"))
}

func (suite *ServiceTestSuite) TestPagesAndSections() {
	dev := suite.createUser("dev@example.com", models.RoleDeveloper)
	sess := suite.sessionFor(dev)
	project := suite.createProject("client@example.com", nil)

	page, err := suite.pages.CreatePage(suite.ctx, sess, project, PageInput{PageName: "Home", Slug: "home"})
	suite.Require().NoError(err)

	hidden := false
	_, err = suite.pages.CreateSection(suite.ctx, sess, project, page.ID, SectionInput{SectionName: "Footer CTA", SectionType: models.SectionCTA, OrderIndex: 2, IsVisible: &hidden})
	suite.Require().NoError(err)
	_, err = suite.pages.CreateSection(suite.ctx, sess, project, page.ID, SectionInput{SectionName: "Hero", SectionType: models.SectionHero, OrderIndex: 0})
	suite.Require().NoError(err)

	sections, err := suite.pages.ListSections(suite.ctx, project, page.ID)
	suite.Require().NoError(err)
	suite.Require().Len(sections, 2)
	suite.Equal("Hero", sections[0].SectionName)
	suite.True(sections[0].IsVisible)
	suite.False(sections[1].IsVisible)

	other := suite.createProject("other@example.com", nil)
	_, err = suite.pages.CreateSection(suite.ctx, sess, other, page.ID, SectionInput{SectionName: "Stray", SectionType: models.SectionFAQ})
	suite.ErrorIs(err, ErrPageNotFound)
}

func (suite *ServiceTestSuite) TestFileUploadAndDelete() {
	designer := suite.createUser("designer@example.com", models.RoleDesigner)
	sess := suite.sessionFor(designer)
	project := suite.createProject("client@example.com", nil)

	file, err := suite.files.Upload(suite.ctx, sess, project, "", Upload{
		Filename: "deck.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
	})
	suite.Require().NoError(err)
	suite.Equal(models.FolderAssets, file.Folder)
	suite.True(suite.store.Has(file.Filename))

	_, err = suite.files.Upload(suite.ctx, sess, project, models.FolderLogos, Upload{
		Filename: "deck.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
	})
	suite.ErrorIs(err, ErrInvalidFileType)
	_, err = suite.files.Upload(suite.ctx, sess, project, "secrets", Upload{Filename: "a.png", ContentType: "image/png"})
	suite.ErrorIs(err, ErrInvalidFolder)

	suite.Require().NoError(suite.files.Delete(suite.ctx, sess, project, file.ID))
	suite.False(suite.store.Has(file.Filename))
	suite.ErrorIs(suite.files.Delete(suite.ctx, sess, project, file.ID), ErrFileNotFound)
	suite.EqualValues(1, suite.countActivity("ASSET_DELETED"))

	live, err := suite.files.List(suite.ctx, project, "")
	suite.Require().NoError(err)
	suite.Empty(live)
}

func (suite *ServiceTestSuite) TestFileUpload_StoreFailureRecordsNothing() {
	designer := suite.createUser("designer@example.com", models.RoleDesigner)
	project := suite.createProject("client@example.com", nil)
	suite.store.PutErr = errors.New("bucket unavailable")

	_, err := suite.files.Upload(suite.ctx, suite.sessionFor(designer), project, models.FolderAssets, Upload{
		Filename: "deck.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF"),
	})
	suite.Error(err)
	suite.EqualValues(0, suite.countActivity("FILE_UPLOADED"))
}

func (suite *ServiceTestSuite) TestApproveLogo_IsIdempotent() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)

	logo, err := suite.files.Upload(suite.ctx, suite.sessionFor(lead), project, models.FolderLogos, Upload{
		Filename: "logo.svg", ContentType: "image/svg+xml", Size: 5, Body: strings.NewReader("<svg>"),
	})
	suite.Require().NoError(err)

	for i := 0; i < 2; i++ {
		_, err := suite.files.ApproveLogo(suite.ctx, suite.sessionFor(client), project, logo.ID)
		suite.Require().NoError(err)
	}
	suite.EqualValues(1, suite.countActivity("ASSET_APPROVED"))
	suite.Len(suite.notificationsFor(lead), 1)

	action := "ASSET_APPROVED"
	entries, err := suite.repos.Activities.List(repository.ActivityFilter{ActionType: &action})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(logoApprovalID(logo.ID), entries[0].ID)
	suite.Equal(logo.ID, entries[0].EntityID)

	asset, err := suite.files.Upload(suite.ctx, suite.sessionFor(lead), project, models.FolderAssets, Upload{
		Filename: "photo.jpg", ContentType: "image/jpeg", Size: 3, Body: strings.NewReader("jpg"),
	})
	suite.Require().NoError(err)
	_, err = suite.files.ApproveLogo(suite.ctx, suite.sessionFor(client), project, asset.ID)
	suite.ErrorIs(err, ErrFileNotFound)
}

func (suite *ServiceTestSuite) TestApproveLogo_LosingRaceRecordsNothing() {
	lead := suite.createUser("lead@example.com", models.RoleStrategist)
	client := suite.createUser("client@example.com", models.RoleClient)
	project := suite.createProject(client.Email, lead)

	logo, err := suite.files.Upload(suite.ctx, suite.sessionFor(lead), project, models.FolderLogos, Upload{
		Filename: "mark.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png"),
	})
	suite.Require().NoError(err)

	// Another request already wrote the approval row.
	suite.Require().NoError(suite.repos.Activities.Create(&models.ActivityLog{
		ID:         logoApprovalID(logo.ID),
		ProjectID:  &project.ID,
		UserID:     client.ID,
		ActionType: "ASSET_APPROVED",
		EntityType: "LOGO",
		EntityID:   logo.ID,
	}))

	_, err = suite.files.ApproveLogo(suite.ctx, suite.sessionFor(client), project, logo.ID)
	suite.Require().NoError(err)
	suite.EqualValues(1, suite.countActivity("ASSET_APPROVED"))
	suite.Empty(suite.notificationsFor(lead))
}
