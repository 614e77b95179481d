package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/core/ports/driving"
)

// ==================== Stub Services ====================

type stubIngestService struct {
	lastDoc      domain.RawDocument
	lastIdentity string
	result       *driving.IngestResult
	err          error
}

func (s *stubIngestService) Ingest(
	_ context.Context, raw domain.RawDocument, identity string,
) (*driving.IngestResult, error) {
	s.lastDoc = raw
	s.lastIdentity = identity
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &driving.IngestResult{ChunksStored: 3}, nil
}

type stubAnswerService struct {
	answer *domain.Answer
	err    error
}

func (s *stubAnswerService) Answer(_ context.Context, question, _ string) (*domain.Answer, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.answer != nil {
		return s.answer, nil
	}
	return &domain.Answer{
		Question:    question,
		Answer:      "stub answer",
		Sources:     []string{"doc.pdf"},
		Confidence:  0.8,
		ChunksUsed:  3,
		ProcessTime: "0.10s",
	}, nil
}

type stubHistoryService struct {
	records []domain.ChatRecord
	cleared []string
}

func (s *stubHistoryService) List(_ context.Context, _ string) ([]domain.ChatRecord, error) {
	return s.records, nil
}

func (s *stubHistoryService) Clear(_ context.Context, identity string) error {
	s.cleared = append(s.cleared, identity)
	return nil
}

type stubUserService struct {
	users []domain.User
}

func (s *stubUserService) Create(_ context.Context, username string, admin bool) (*domain.User, error) {
	user := domain.User{ID: "u1", Username: username, IsAdmin: admin}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *stubUserService) Promote(_ context.Context, _ string) error { return nil }

func (s *stubUserService) List(_ context.Context) ([]domain.User, error) { return s.users, nil }

func (s *stubUserService) IsAdmin(_ context.Context, _ string) (bool, error) { return false, nil }

type stubVectorIndex struct {
	count int
	reset bool
}

func (s *stubVectorIndex) Upsert(_ context.Context, _ []driven.IndexEntry) error { return nil }
func (s *stubVectorIndex) Query(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	return nil, nil
}
func (s *stubVectorIndex) Count(_ context.Context) (int, error) { return s.count, nil }
func (s *stubVectorIndex) Reset(_ context.Context) error {
	s.reset = true
	s.count = 0
	return nil
}
func (s *stubVectorIndex) Close() error { return nil }

// setupTestServices installs stubs for all package-level services and
// returns a cleanup restoring the previous state. initServices sees a
// non-nil ingest service and skips real adapter wiring.
func setupTestServices() func() {
	oldIngest, oldAnswer := ingestService, answerService
	oldHistory, oldUser, oldIndex := historyService, userService, vectorIndex

	ingestService = &stubIngestService{}
	answerService = &stubAnswerService{}
	historyService = &stubHistoryService{}
	userService = &stubUserService{}
	vectorIndex = &stubVectorIndex{count: 7}

	return func() {
		ingestService, answerService = oldIngest, oldAnswer
		historyService, userService, vectorIndex = oldHistory, oldUser, oldIndex
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

// ==================== Tests ====================

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "astu-assist version test-version-1.0.0")
}

func TestAskCmd_PrintsAnswerAndMetadata(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "ask", "what", "is", "ASTU?")
	assert.NoError(t, err)
	assert.Contains(t, out, "stub answer")
	assert.Contains(t, out, "Sources: doc.pdf")
	assert.Contains(t, out, "Confidence: 0.800 | Chunks: 3 | Time: 0.10s")
}

func TestAskCmd_RequiresAnswerService(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	answerService = nil

	_, err := execute(t, "ask", "question")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API key")
}

func TestIngestCmd_ReadsFileAndReportsChunks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	stub := ingestService.(*stubIngestService)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some text"), 0600))

	out, err := execute(t, "ingest", path, "--as", "alice")
	assert.NoError(t, err)
	assert.Contains(t, out, "'notes.txt' processed successfully: 3 chunks stored")

	assert.Equal(t, "notes.txt", stub.lastDoc.Name)
	assert.Equal(t, "text/plain", stub.lastDoc.MIMEType)
	assert.Equal(t, []byte("some text"), stub.lastDoc.Content)
	assert.Equal(t, "alice", stub.lastIdentity)
}

func TestIngestCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "ingest", filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}

func TestMimeTypeForPath(t *testing.T) {
	assert.Equal(t, "application/pdf", mimeTypeForPath("doc.PDF"))
	assert.Equal(t, "text/plain", mimeTypeForPath("notes.txt"))
	assert.Equal(t, "text/markdown", mimeTypeForPath("readme.md"))
	assert.Equal(t, "", mimeTypeForPath("image.png"))
}

func TestHistoryListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "history", "list", "alice")
	assert.NoError(t, err)
	assert.Contains(t, out, "No history.")
}

func TestHistoryClearCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	stub := historyService.(*stubHistoryService)

	out, err := execute(t, "history", "clear", "alice")
	assert.NoError(t, err)
	assert.Contains(t, out, "History cleared.")
	assert.Equal(t, []string{"alice"}, stub.cleared)
}

func TestUserAddCmd_Admin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { userAddAdmin = false }()

	out, err := execute(t, "user", "add", "alice", "--admin")
	assert.NoError(t, err)
	assert.Contains(t, out, `Created admin "alice"`)
}

func TestIndexCountCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "index", "count")
	assert.NoError(t, err)
	assert.Contains(t, out, "7 chunks indexed")
}

func TestIndexResetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	stub := vectorIndex.(*stubVectorIndex)

	out, err := execute(t, "index", "reset")
	assert.NoError(t, err)
	assert.Contains(t, out, "Index reset.")
	assert.True(t, stub.reset)
}
