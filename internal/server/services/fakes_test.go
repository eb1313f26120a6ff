package services

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/datacleaner-ai/datacleaner/internal/common"
	"github.com/datacleaner-ai/datacleaner/internal/server/models"
)

// fakeUserRepo keeps users in a map keyed by id.
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id int64, role models.Role) error {
	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) IncrementUploadCount(ctx context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.UploadCount++
	return nil
}

type fakeImageRepo struct {
	images []*models.Image
	nextID int64
}

func (r *fakeImageRepo) Create(ctx context.Context, image *models.Image) (*models.Image, error) {
	r.nextID++
	image.ID = r.nextID
	image.CreatedAt = time.Now()
	r.images = append(r.images, image)
	return image, nil
}

func (r *fakeImageRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Image, error) {
	var result []*models.Image
	for _, img := range r.images {
		if img.UserID == userID {
			result = append(result, img)
		}
	}
	return result, nil
}

func (r *fakeImageRepo) ListAll(ctx context.Context) ([]*models.Image, error) {
	return r.images, nil
}

func (r *fakeImageRepo) GetByFilename(ctx context.Context, filename string) (*models.Image, error) {
	for _, img := range r.images {
		if img.Filename == filename {
			return img, nil
		}
	}
	return nil, common.ErrorNotFound
}

// fakeObjectStore records puts in memory.
type fakeObjectStore struct {
	objects map[string][]byte
	puts    int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (s *fakeObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = data
	s.puts++
	return nil
}

func (s *fakeObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/jpeg", nil
}

// markingProcessor tags the payload and reports one detection per call.
type markingProcessor struct {
	calls    int
	lastMode string
}

func (p *markingProcessor) Process(ctx context.Context, data []byte, mode string) ([]byte, []models.Detection, error) {
	p.calls++
	p.lastMode = mode
	out := append([]byte("processed:"), data...)
	return out, []models.Detection{{Class: "face", Confidence: 0.97}}, nil
}
