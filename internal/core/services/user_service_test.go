package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/kyc"
	"simplekyc/internal/pkg/pagination"
)

func newUserFixture() (*UserService, *memoryPersonalRepo, *fakeDirectory) {
	repo := newMemoryPersonalRepo()
	dir := newFakeDirectory()
	return NewUserService(dir, repo), repo, dir
}

func TestGetPersonalInfoSeedsFromDirectory(t *testing.T) {
	svc, _, _ := newUserFixture()

	data, err := svc.GetPersonalInfo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Emily", data.BasicInfo.FirstName)
	assert.Equal(t, "30/05/1996", data.BasicInfo.DOB)
	assert.Equal(t, "Smith", data.BasicInfo.MiddleName)
	require.Len(t, data.Addresses, 1)
	assert.Equal(t, "Mailing", data.Addresses[0].Type)
	require.Len(t, data.Emails, 1)
	assert.True(t, data.Emails[0].Preferred)
}

func TestSavePersonalInfoThenReadBack(t *testing.T) {
	svc, _, _ := newUserFixture()
	ctx := context.Background()

	data, err := svc.GetPersonalInfo(ctx, 1)
	require.NoError(t, err)
	data.BasicInfo.FirstName = "Emma"

	tree, err := svc.SavePersonalInfo(ctx, 1, 1, data)
	require.NoError(t, err)
	assert.True(t, tree.IsValid())

	// saved copy now wins over the directory profile
	got, err := svc.GetPersonalInfo(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.BasicInfo.FirstName)
}

func TestSavePersonalInfoRejectsInvalidData(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()

	data, err := svc.GetPersonalInfo(ctx, 1)
	require.NoError(t, err)
	data.BasicInfo.FirstName = ""
	data.Emails[0].Address = "not-an-email"

	tree, err := svc.SavePersonalInfo(ctx, 1, 1, data)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "First name is required", tree[kyc.SectionBasicInfo][0]["firstName"])
	assert.Equal(t, "Invalid email format", tree[kyc.SectionEmails][0]["address"])

	// nothing written
	_, err = repo.GetBySubjectID(ctx, 1)
	assert.Error(t, err)
}

func TestSavePersonalInfoRejectsForeignViewer(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()

	data, err := svc.GetPersonalInfo(ctx, 2)
	require.NoError(t, err)

	// an officer viewing subject 2 cannot overwrite their data
	_, err = svc.SavePersonalInfo(ctx, 2, 1, data)
	assert.ErrorIs(t, err, domain.ErrReadOnly)

	_, err = repo.GetBySubjectID(ctx, 2)
	assert.Error(t, err, "nothing written for a foreign viewer")
}

func TestGetPersonalInfoUnknownSubject(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.GetPersonalInfo(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListMapsRoles(t *testing.T) {
	svc, _, _ := newUserFixture()

	entries, total, err := svc.List(context.Background(), &pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	assert.Equal(t, "officer", entries[0].Role)
	assert.Equal(t, "user", entries[1].Role, "non-admin directory roles all map to user")
}

func TestProfileSeedConversion(t *testing.T) {
	dir := newFakeDirectory()
	profile, err := dir.GetUser(1)
	require.NoError(t, err)

	seed := ProfileSeed(profile)
	require.NotNil(t, seed)
	assert.Equal(t, "Smith", seed.MaidenName)
	assert.Equal(t, "1996-5-30", seed.BirthDate)
	require.NotNil(t, seed.Address)
	assert.Equal(t, "626 Main Street", seed.Address.Street)

	assert.Nil(t, ProfileSeed(nil))
}
