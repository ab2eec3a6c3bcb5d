package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

func writeSVG(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestIngestService_Ingest(t *testing.T) {
	root := t.TempDir()
	identity := "linus"

	// Denomination 1: a front carrying an embedded serial and a back without
	// one. The back borrows the front's serial.
	writeSVG(t, filepath.Join(root, identity, "1", "1_linus_FRONT.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><text>SN-AAA111-42</text></svg>`)
	writeSVG(t, filepath.Join(root, identity, "1", "1_linus_back.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10"/></svg>`)

	// Denomination 5: a lone front with no payload at all, forcing the
	// deterministic fallback serial.
	writeSVG(t, filepath.Join(root, identity, "5", "5_linus_FRONT.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10"/></svg>`)

	notes := new(MockBanknoteRepository)
	var batch []repository.Minted
	notes.On("CreateMintedBatch", mock.Anything, mock.AnythingOfType("[]repository.Minted")).
		Run(func(args mock.Arguments) {
			batch = args.Get(1).([]repository.Minted)
		}).Return(nil)
	notes.On("ListByUser", mock.Anything, uint(1)).
		Return([]model.Banknote{{ID: 1, SerialNumber: "SN-AAA111-42"}}, nil)

	renderer := &stubRenderer{}
	svc := NewIngestService(notes, renderer, root)

	err := svc.Ingest(context.Background(), 1, identity)
	require.NoError(t, err)

	require.Len(t, batch, 3)

	bySide := make(map[string]repository.Minted)
	for _, minted := range batch {
		bySide[minted.Note.Denomination+"/"+string(minted.Note.Side)] = minted
	}

	front1 := bySide["1/front"]
	require.NotNil(t, front1.Note)
	assert.Equal(t, "SN-AAA111-42", front1.Note.SerialNumber)
	assert.Equal(t, uint(1), front1.Note.UserID)
	assert.Equal(t, identity, front1.Note.SeedText)
	assert.True(t, front1.Note.IsPublic)
	require.NotNil(t, front1.Serial, "first sighting of a serial creates an index row")
	assert.Equal(t, "SN-AAA111-42", front1.Serial.Serial)
	assert.True(t, front1.Serial.IsActive)

	back1 := bySide["1/back"]
	require.NotNil(t, back1.Note)
	assert.Equal(t, "SN-AAA111-42", back1.Note.SerialNumber, "back borrows the front's serial")
	assert.Nil(t, back1.Serial, "a shared serial is indexed only once")

	front5 := bySide["5/front"]
	require.NotNil(t, front5.Note)
	assert.Equal(t, "SN-linus-5-front", front5.Note.SerialNumber, "fallback serial is synthesized")
	require.NotNil(t, front5.Serial)

	// One PNG and one PDF per side file, plus the combined document.
	assert.Len(t, renderer.thumbnails, 3)
	assert.Len(t, renderer.documents, 3)
	require.Len(t, renderer.combined, 1)
	assert.Equal(t, filepath.Join(root, identity, identity+"_all_banknotes.pdf"), renderer.combined[0])

	notes.AssertExpectations(t)
}

func TestIngestService_Ingest_QRPayload(t *testing.T) {
	root := t.TempDir()
	writeSVG(t, filepath.Join(root, "linus", "20", "20_linus_FRONT.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><text id="qr-code">SN-QR999-7</text></svg>`)

	notes := new(MockBanknoteRepository)
	var batch []repository.Minted
	notes.On("CreateMintedBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			batch = args.Get(1).([]repository.Minted)
		}).Return(nil)
	notes.On("ListByUser", mock.Anything, uint(1)).Return([]model.Banknote{}, nil)

	svc := NewIngestService(notes, &stubRenderer{}, root)
	require.NoError(t, svc.Ingest(context.Background(), 1, "linus"))

	require.Len(t, batch, 1)
	assert.Equal(t, "SN-QR999-7", batch[0].Note.SerialNumber)
	assert.Equal(t, "SN-QR999-7", batch[0].Note.QRData)
}

func TestIngestService_Ingest_NoOutput(t *testing.T) {
	notes := new(MockBanknoteRepository)
	svc := NewIngestService(notes, &stubRenderer{}, t.TempDir())

	// The pipeline exited 0 but produced no directory. Nothing to mint.
	err := svc.Ingest(context.Background(), 1, "ghost")

	assert.NoError(t, err)
	notes.AssertNotCalled(t, "CreateMintedBatch", mock.Anything, mock.Anything)
}

func TestIngestService_Ingest_RendererFailure(t *testing.T) {
	root := t.TempDir()
	writeSVG(t, filepath.Join(root, "linus", "1", "1_linus_FRONT.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><text>SN-AAA-1</text></svg>`)

	notes := new(MockBanknoteRepository)
	svc := NewIngestService(notes, &stubRenderer{err: errors.New("bad svg")}, root)

	err := svc.Ingest(context.Background(), 1, "linus")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad svg")
	notes.AssertNotCalled(t, "CreateMintedBatch", mock.Anything, mock.Anything)
}

func TestIngestService_Ingest_BatchFailure(t *testing.T) {
	root := t.TempDir()
	writeSVG(t, filepath.Join(root, "linus", "1", "1_linus_FRONT.svg"),
		`<svg xmlns="http://www.w3.org/2000/svg"><text>SN-AAA-1</text></svg>`)

	notes := new(MockBanknoteRepository)
	notes.On("CreateMintedBatch", mock.Anything, mock.Anything).
		Return(errors.New("duplicate entry"))

	svc := NewIngestService(notes, &stubRenderer{}, root)
	err := svc.Ingest(context.Background(), 1, "linus")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate entry")
	notes.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}
