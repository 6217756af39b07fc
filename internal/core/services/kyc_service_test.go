package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplekyc/internal/adapters/persistence/models"
	"simplekyc/internal/core/domain"
	"simplekyc/internal/core/kyc"
)

func newKYCFixture() (*KYCService, *memoryKYCRepo, *fakeDirectory) {
	repo := newMemoryKYCRepo()
	dir := newFakeDirectory()
	return NewKYCService(repo, dir), repo, dir
}

func completeRecord() kyc.Record {
	return kyc.Record{
		BasicInfo: kyc.BasicInfo{
			FirstName: "Emily", LastName: "Johnson", MiddleName: "Rose", DOB: "30/05/1996", Age: "30",
		},
		Addresses: []kyc.Address{{
			Country: "United States", City: "Phoenix", Street: "626 Main Street",
			State: "Mississippi", StateCode: "MS", PostalCode: "29112", Type: "Mailing",
		}},
		Emails:      []kyc.Email{{Address: "emily@x.dummyjson.com", Type: "Personal", Preferred: true}},
		Phones:      []kyc.Phone{{Number: "+81 965-431-3024", Type: "Personal", Preferred: true}},
		IDDocs:      []kyc.IDDoc{{Type: "Passport", Number: "P1234567", ExpiryDate: "01/01/2030"}},
		Occupations: []kyc.Occupation{{Occupation: "Engineer", FromDate: "01/01/2015", ToDate: "01/01/2020"}},
		Incomes:     []kyc.Income{{Type: "Salary", Amount: "100"}},
		Assets:      []kyc.Asset{{Type: "Liquidity", Amount: "50"}},
		Liabilities: []kyc.Liability{{Type: "Personal Loan", Amount: "30"}},
		Sources:     []kyc.Source{{Type: "Inheritance", Amount: "10"}},
		Investment:  kyc.Investment{Experience: "<5 years", RiskTolerance: "10%"},
	}
}

func TestLoadFormSeedsFromDirectory(t *testing.T) {
	svc, _, _ := newKYCFixture()

	form, err := svc.LoadForm(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, kyc.StateSeededFromDirectory, form.State)
	assert.Equal(t, "Emily", form.Record.BasicInfo.FirstName)
	assert.Equal(t, "30/05/1996", form.Record.BasicInfo.DOB)
	assert.Equal(t, "Smith", form.Record.BasicInfo.MiddleName)
	assert.False(t, form.ReadOnly)
}

func TestLoadFormSavedRecordWins(t *testing.T) {
	svc, repo, _ := newKYCFixture()
	ctx := context.Background()

	saved := completeRecord()
	saved.BasicInfo.FirstName = "Edited"
	payload, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &models.KYCRecord{SubjectID: 1, Payload: string(payload)}))

	form, err := svc.LoadForm(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, kyc.StateSeededFromSaved, form.State)
	assert.Equal(t, "Edited", form.Record.BasicInfo.FirstName)
}

func TestLoadFormCorruptPayloadFallsBackToDirectory(t *testing.T) {
	svc, repo, _ := newKYCFixture()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.KYCRecord{SubjectID: 1, Payload: "{broken"}))

	form, err := svc.LoadForm(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, kyc.StateSeededFromDirectory, form.State)
	assert.Equal(t, "Emily", form.Record.BasicInfo.FirstName)
}

func TestLoadFormUnknownSubject(t *testing.T) {
	svc, _, _ := newKYCFixture()

	_, err := svc.LoadForm(context.Background(), 999, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRowOperationsWorkOnTheDraft(t *testing.T) {
	svc, _, _ := newKYCFixture()
	ctx := context.Background()

	_, err := svc.LoadForm(ctx, 1, 1)
	require.NoError(t, err)

	form, err := svc.AddRow(ctx, 1, 1, kyc.SectionIncomes)
	require.NoError(t, err)
	require.Len(t, form.Record.Incomes, 2)

	form, err = svc.UpdateField(ctx, 1, 1, kyc.SectionIncomes, 1, "amount", "250")
	require.NoError(t, err)
	assert.Equal(t, "250", form.Record.Incomes[1].Amount)

	form, err = svc.RemoveRow(ctx, 1, 1, kyc.SectionIncomes, 0)
	require.NoError(t, err)
	require.Len(t, form.Record.Incomes, 1)
	assert.Equal(t, "250", form.Record.Incomes[0].Amount)

	_, err = svc.RemoveRow(ctx, 1, 1, kyc.SectionIncomes, 5)
	assert.ErrorIs(t, err, domain.ErrRowIndexOutOfRange)
}

func TestSubmitPersistsValidDraft(t *testing.T) {
	svc, repo, _ := newKYCFixture()
	ctx := context.Background()

	payload, err := json.Marshal(completeRecord())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &models.KYCRecord{SubjectID: 2, Payload: string(payload)}))

	_, err = svc.LoadForm(ctx, 2, 2)
	require.NoError(t, err)

	resp, err := svc.Submit(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, kyc.StateSaved, resp.State)
	require.NotNil(t, resp.Totals)
	assert.Equal(t, 190.0, resp.Totals.NetWorth)

	stored, err := repo.GetBySubjectID(ctx, 2)
	require.NoError(t, err)
	var restored kyc.Record
	require.NoError(t, json.Unmarshal([]byte(stored.Payload), &restored))
	assert.Equal(t, completeRecord(), restored)
}

func TestSubmitInvalidDraftKeepsDataUnpersisted(t *testing.T) {
	svc, repo, _ := newKYCFixture()
	ctx := context.Background()

	// directory-seeded form: financial sections are empty, so invalid
	_, err := svc.LoadForm(ctx, 2, 2)
	require.NoError(t, err)

	resp, err := svc.Submit(ctx, 2, 2)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, kyc.StateValidationFailed, resp.State)
	assert.NotEmpty(t, resp.FirstErrorSection)
	assert.False(t, resp.Errors.IsValid())

	_, err = repo.GetBySubjectID(ctx, 2)
	assert.Error(t, err, "nothing is written on validation failure")

	// the draft keeps the entered data and errors
	form, err := svc.LoadForm(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, kyc.StateSeededFromDirectory, form.State)
}

func TestTotalsReflectDraftEdits(t *testing.T) {
	svc, _, _ := newKYCFixture()
	ctx := context.Background()

	_, err := svc.LoadForm(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.UpdateField(ctx, 1, 1, kyc.SectionIncomes, 0, "amount", "1000")
	require.NoError(t, err)

	totals, err := svc.Totals(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, totals.TotalIncomes)
	assert.Equal(t, 1000.0, totals.NetWorth)
}

func TestViewerMutationsAreRejected(t *testing.T) {
	svc, repo, _ := newKYCFixture()
	ctx := context.Background()

	payload, err := json.Marshal(completeRecord())
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, &models.KYCRecord{SubjectID: 2, Payload: string(payload)}))

	// an officer's view of a foreign form is read-only
	form, err := svc.LoadForm(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, form.ReadOnly)

	_, err = svc.UpdateField(ctx, 2, 1, kyc.SectionIncomes, 0, "amount", "999999")
	assert.ErrorIs(t, err, domain.ErrReadOnly)
	_, err = svc.AddRow(ctx, 2, 1, kyc.SectionIncomes)
	assert.ErrorIs(t, err, domain.ErrReadOnly)
	_, err = svc.RemoveRow(ctx, 2, 1, kyc.SectionIncomes, 0)
	assert.ErrorIs(t, err, domain.ErrReadOnly)
	_, err = svc.Submit(ctx, 2, 1)
	assert.ErrorIs(t, err, domain.ErrReadOnly)

	// the saved record and the owner's own form are untouched
	stored, err := repo.GetBySubjectID(ctx, 2)
	require.NoError(t, err)
	var restored kyc.Record
	require.NoError(t, json.Unmarshal([]byte(stored.Payload), &restored))
	assert.Equal(t, "100", restored.Incomes[0].Amount)

	owned, err := svc.LoadForm(ctx, 2, 2)
	require.NoError(t, err)
	assert.False(t, owned.ReadOnly)
	assert.Equal(t, "100", owned.Record.Incomes[0].Amount)
}

func TestViewerLoadDoesNotDisturbOwnerDraft(t *testing.T) {
	svc, _, _ := newKYCFixture()
	ctx := context.Background()

	_, err := svc.LoadForm(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.UpdateField(ctx, 1, 1, kyc.SectionIncomes, 0, "amount", "5000")
	require.NoError(t, err)

	// an officer views the same subject; unsaved edits stay private
	view, err := svc.LoadForm(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, view.ReadOnly)
	assert.Empty(t, view.Record.Incomes[0].Amount)

	// and the owner's unsaved edit survives the view
	totals, err := svc.Totals(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, totals.TotalIncomes)
}
