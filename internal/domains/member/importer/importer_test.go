package importer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/infrastructure/storage"
	"gpevim-backend/internal/shared/store"
)

type fakeObjects struct {
	puts map[string][]byte
}

func (f *fakeObjects) PutNew(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	full := bucket + "/" + key
	if _, ok := f.puts[full]; ok {
		return "", storage.ErrObjectExists
	}
	f.puts[full] = data
	return "https://cdn.test/" + full, nil
}

// failingRepo rejects the member named "Falha".
type failingRepo struct {
	*store.Memory[model.Member, *model.Member]
}

func (r failingRepo) Create(ctx context.Context, m *model.Member) (*model.Member, error) {
	if m.Name == "Falha" {
		return nil, store.Unavailable("create member", errors.New("boom"))
	}
	return r.Memory.Create(ctx, m)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1200, 600))))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestReadJSON(t *testing.T) {
	rows, err := ReadJSON(strings.NewReader(`[{"name":"Ana","role":"Bolsista","category":"colaboradores","local_image_path":"ana.png"}]`))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ana.png", rows[0].LocalImagePath)
}

func TestReadXLSX_MatchesColumnsByHeader(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"category", "Name", "role", "image_url", "ignored"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"coordenadores", "Carlos", "Professor", "https://x/c.jpg", "?"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"colaboradores", "Beto", "Mestrando", "https://x/b.jpg"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank rows are skipped")
	assert.Equal(t, Row{Name: "Carlos", Role: "Professor", ImageURL: "https://x/c.jpg", Category: "coordenadores"}, rows[0])
	assert.Equal(t, "Beto", rows[1].Name)
}

func TestReadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\n"), 0o644))

	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "unsupported")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ana.png"))

	repo := failingRepo{Memory: store.NewMemory[model.Member](nil)}
	objects := &fakeObjects{}
	im := New(repo, objects, storage.NewImageProcessor(800, 80), dir)
	im.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	rows := []Row{
		{Name: "Ana", Role: "Bolsista", Category: "colaboradores", LocalImagePath: "ana.png"},
		{Name: "Beto", Role: "Mestrando", Category: "colaboradores", ImageURL: "https://x/b.jpg", LocalImagePath: "missing.png"},
		{Name: "Sem Foto", Role: "Bolsista", Category: "colaboradores", LocalImagePath: "missing.png"},
		{Name: "Falha", Role: "Bolsista", Category: "colaboradores", ImageURL: "https://x/f.jpg"},
	}

	res := im.Run(context.Background(), rows)

	assert.Equal(t, Result{Total: 4, Inserted: 2, Failed: 2, ImagesUploaded: 1, ImagesMissing: 2}, res)
	assert.Contains(t, objects.puts, "members-images/public/1700000000000_ana.jpg")

	members, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "https://cdn.test/members-images/public/1700000000000_ana.jpg", members[0].ImageURL)
	assert.Equal(t, "https://x/b.jpg", members[1].ImageURL)
	assert.Nil(t, members[0].LattesURL)
}
