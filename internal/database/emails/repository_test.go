package emails

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dealdesk/dealdesk/internal/database"
	"github.com/dealdesk/dealdesk/internal/entities"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := "./test_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})
	return NewRepository(db.DB)
}

func TestCreateWithLink(t *testing.T) {
	repo := setupTestRepo(t)

	tmpl := &entities.EmailTemplate{
		Name:    "Buyer Welcome",
		Subject: "Welcome",
		Body:    "<html><body>hi</body></html>",
	}
	link := &entities.ImportedEmailTemplateLink{
		SourceLetterID: "L-1",
		FolderHint:     "Templates/Buyer",
		RecipientsTo:   "buyer",
		ImportRecordID: 1,
	}

	saved, err := repo.CreateWithLink(tmpl, link)
	require.NoError(t, err)
	assert.Same(t, tmpl, saved)
	assert.NotZero(t, saved.ID)

	gotLink, err := repo.GetLinkByTemplateID(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "L-1", gotLink.SourceLetterID)
	assert.Equal(t, saved.ID, gotLink.EmailTemplateID)
}

func TestCreateWithLinkNameConflictReturnsWinner(t *testing.T) {
	repo := setupTestRepo(t)

	first := &entities.EmailTemplate{Name: "Closing Notice", Body: "first"}
	_, err := repo.CreateWithLink(first, &entities.ImportedEmailTemplateLink{ImportRecordID: 1})
	require.NoError(t, err)

	// Same name, different content: the original row wins and no second
	// link is written.
	second := &entities.EmailTemplate{Name: "Closing Notice", Body: "second"}
	saved, err := repo.CreateWithLink(second, &entities.ImportedEmailTemplateLink{ImportRecordID: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, saved.ID)
	assert.Equal(t, "first", saved.Body)

	links, err := repo.ListByImportRecord(2)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestFindByName(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByName("Missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	tmpl := &entities.EmailTemplate{Name: "Present"}
	_, err = repo.CreateWithLink(tmpl, &entities.ImportedEmailTemplateLink{})
	require.NoError(t, err)

	found, err := repo.FindByName("Present")
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, found.ID)
}

func TestListByImportRecord(t *testing.T) {
	repo := setupTestRepo(t)

	for _, name := range []string{"A", "B"} {
		_, err := repo.CreateWithLink(
			&entities.EmailTemplate{Name: name},
			&entities.ImportedEmailTemplateLink{ImportRecordID: 5},
		)
		require.NoError(t, err)
	}
	_, err := repo.CreateWithLink(
		&entities.EmailTemplate{Name: "C"},
		&entities.ImportedEmailTemplateLink{ImportRecordID: 6},
	)
	require.NoError(t, err)

	links, err := repo.ListByImportRecord(5)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}
