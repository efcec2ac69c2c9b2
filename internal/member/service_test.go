package member_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/samcomo/dbz-api-server/internal/member"
	"github.com/samcomo/dbz-api-server/internal/model"
	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"github.com/samcomo/dbz-api-server/internal/shared/storage"
	"github.com/samcomo/dbz-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rawEmail    = "samcomo@gmail.com"
	rawNickname = "삼코모"
	rawPhone    = "010-1234-5678"
	rawPassword = "abcd123!"
)

type serviceFixture struct {
	service    *member.MemberService
	store      *testutil.FakeMemberStore
	imageStore *testutil.FakeImageStore
	hasher     password.Hasher
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()

	store := testutil.NewFakeMemberStore()
	imageStore := testutil.NewFakeImageStore()
	hasher := testutil.NewTestPasswordHasher()

	return &serviceFixture{
		service:    member.NewMemberService(store, hasher, imageStore),
		store:      store,
		imageStore: imageStore,
		hasher:     hasher,
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

func newRegisterRequest() *member.RegisterRequest {
	return &member.RegisterRequest{
		Email:     rawEmail,
		Nickname:  rawNickname,
		Phone:     rawPhone,
		Password:  rawPassword,
		Address:   "제주시",
		Latitude:  float64Ptr(34.12345),
		Longitude: float64Ptr(127.12345),
	}
}

// seedMember stores an ACTIVE member without a profile image
func seedMember(t *testing.T, f *serviceFixture) uint32 {
	t.Helper()

	hash, err := f.hasher.Hash(rawPassword)
	require.NoError(t, err)

	return f.store.Seed(model.NewMember(rawEmail, rawNickname, rawPhone, hash,
		model.Location{Address: "제주시", Latitude: 34.12345, Longitude: 127.12345}))
}

func testImage() storage.ImageFile {
	return storage.ImageFile{
		Reader:      strings.NewReader("test"),
		Size:        4,
		ContentType: "image/png",
		Filename:    "test.png",
	}
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }
func (failingHasher) Verify(string, string) bool  { return false }

func TestRegister_Success(t *testing.T) {
	// Given: store has neither the email nor the nickname
	f := setupService(t)
	request := newRegisterRequest()

	// When
	err := f.service.Register(context.Background(), request)

	// Then: save is invoked exactly once with the submitted fields
	require.NoError(t, err)

	calls := f.store.SaveCalls()
	require.Len(t, calls, 1)

	saved := calls[0]
	assert.Equal(t, request.Email, saved.Email)
	assert.Equal(t, request.Nickname, saved.Nickname)
	assert.Equal(t, request.Phone, saved.Phone)
	assert.Equal(t, request.Address, saved.Address)
	assert.Equal(t, *request.Latitude, saved.Latitude)
	assert.Equal(t, *request.Longitude, saved.Longitude)
	assert.Equal(t, model.RoleMember, saved.Role)
	assert.Equal(t, model.StatusActive, saved.Status)
	assert.Nil(t, saved.ProfileImageURL)

	// Then: only the hash is stored and it verifies against the raw password
	assert.NotEqual(t, rawPassword, saved.Password)
	assert.True(t, f.hasher.Verify(rawPassword, saved.Password))
}

func TestRegister_Scenario_StoredHashVerifies(t *testing.T) {
	f := setupService(t)
	request := &member.RegisterRequest{
		Email:     "a@x.com",
		Nickname:  "n1",
		Phone:     rawPhone,
		Password:  "pw1",
		Address:   "제주시",
		Latitude:  float64Ptr(0),
		Longitude: float64Ptr(0),
	}

	require.NoError(t, f.service.Register(context.Background(), request))

	stored, err := f.store.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, f.hasher.Verify("pw1", stored.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	// Given: email already present
	f := setupService(t)
	seedMember(t, f)

	request := newRegisterRequest()
	request.Nickname = "새닉네임"

	// When
	err := f.service.Register(context.Background(), request)

	// Then
	assert.ErrorIs(t, err, member.ErrEmailAlreadyExists)
	assert.Empty(t, f.store.SaveCalls())
}

func TestRegister_DuplicateEmail_NicknameNotChecked(t *testing.T) {
	f := setupService(t)
	f.store.ExistsByEmailFunc = func(context.Context, string) (bool, error) { return true, nil }

	nicknameChecked := false
	f.store.ExistsByNicknameFunc = func(context.Context, string) (bool, error) {
		nicknameChecked = true
		return false, nil
	}

	err := f.service.Register(context.Background(), newRegisterRequest())

	assert.ErrorIs(t, err, member.ErrEmailAlreadyExists)
	assert.False(t, nicknameChecked)
	assert.Empty(t, f.store.SaveCalls())
}

func TestRegister_DuplicateNickname(t *testing.T) {
	// Given: email is new but nickname exists
	f := setupService(t)
	seedMember(t, f)

	request := newRegisterRequest()
	request.Email = "other@gmail.com"

	// When
	err := f.service.Register(context.Background(), request)

	// Then
	assert.ErrorIs(t, err, member.ErrNicknameAlreadyExists)
	assert.NotErrorIs(t, err, member.ErrEmailAlreadyExists)
	assert.Empty(t, f.store.SaveCalls())
}

func TestRegister_UniqueViolationOnSave(t *testing.T) {
	testCases := []struct {
		name        string
		racingEmail string
		racingNick  string
		expected    error
	}{
		{
			name:        "Email registered concurrently",
			racingEmail: rawEmail,
			racingNick:  "다른닉네임",
			expected:    member.ErrEmailAlreadyExists,
		},
		{
			name:        "Nickname registered concurrently",
			racingEmail: "racer@gmail.com",
			racingNick:  rawNickname,
			expected:    member.ErrNicknameAlreadyExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given: existence checks pass, but another registration commits before save
			f := setupService(t)
			checks := 0
			f.store.ExistsByNicknameFunc = func(context.Context, string) (bool, error) {
				checks++
				f.store.Seed(model.NewMember(tc.racingEmail, tc.racingNick, rawPhone, "hash", model.Location{}))
				return false, nil
			}

			// When
			err := f.service.Register(context.Background(), newRegisterRequest())

			// Then
			assert.ErrorIs(t, err, tc.expected)
			assert.Equal(t, 1, checks)
			assert.Len(t, f.store.SaveCalls(), 1)
		})
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	f := setupService(t)
	f.store.ExistsByEmailFunc = func(context.Context, string) (bool, error) {
		return false, errors.New("connection refused")
	}

	err := f.service.Register(context.Background(), newRegisterRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, member.ErrEmailAlreadyExists)
	assert.Empty(t, f.store.SaveCalls())
}

func TestRegister_HashFailure(t *testing.T) {
	store := testutil.NewFakeMemberStore()
	service := member.NewMemberService(store, failingHasher{}, testutil.NewFakeImageStore())

	err := service.Register(context.Background(), newRegisterRequest())

	require.Error(t, err)
	assert.Empty(t, store.SaveCalls())
}

func TestGetMyInfo_Success(t *testing.T) {
	// Given
	f := setupService(t)
	id := seedMember(t, f)

	// When
	response, err := f.service.GetMyInfo(context.Background(), id)

	// Then
	require.NoError(t, err)
	assert.Equal(t, id, response.ID)
	assert.Equal(t, rawEmail, response.Email)
	assert.Equal(t, rawNickname, response.Nickname)
	assert.Equal(t, rawPhone, response.Phone)
	assert.Equal(t, "MEMBER", response.Role)
	assert.Equal(t, "ACTIVE", response.Status)
	assert.Nil(t, response.ProfileImageURL)
}

func TestGetMyInfo_MemberNotFound(t *testing.T) {
	f := setupService(t)

	_, err := f.service.GetMyInfo(context.Background(), 42)

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.Empty(t, f.store.SaveCalls())
}

func TestGetMyInfo_StoreFailure(t *testing.T) {
	f := setupService(t)
	f.store.FindByIDFunc = func(context.Context, uint32) (*model.Member, error) {
		return nil, errors.New("connection refused")
	}

	_, err := f.service.GetMyInfo(context.Background(), 1)

	require.Error(t, err)
	assert.NotErrorIs(t, err, member.ErrMemberNotFound)
}

func TestUpdateLocation_Success(t *testing.T) {
	// Given
	f := setupService(t)
	id := seedMember(t, f)
	before, _ := f.store.Get(id)

	request := &member.LocationRequest{
		Address:   "new",
		Latitude:  float64Ptr(10.0),
		Longitude: float64Ptr(20.0),
	}

	// When
	err := f.service.UpdateLocation(context.Background(), id, request)

	// Then: only the location triple changed
	require.NoError(t, err)

	after, ok := f.store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "new", after.Address)
	assert.Equal(t, 10.0, after.Latitude)
	assert.Equal(t, 20.0, after.Longitude)

	after.Address, after.Latitude, after.Longitude = before.Address, before.Latitude, before.Longitude
	assert.Equal(t, before, after)
}

func TestUpdateLocation_Idempotent(t *testing.T) {
	f := setupService(t)
	id := seedMember(t, f)

	// Latitude outside ±90 is accepted as sent
	request := &member.LocationRequest{
		Address:   "새로운 주소지",
		Latitude:  float64Ptr(127.12345),
		Longitude: float64Ptr(37.12345),
	}

	require.NoError(t, f.service.UpdateLocation(context.Background(), id, request))
	first, _ := f.store.Get(id)

	require.NoError(t, f.service.UpdateLocation(context.Background(), id, request))
	second, _ := f.store.Get(id)

	assert.Equal(t, first, second)
	assert.Equal(t, 127.12345, second.Latitude)
}

func TestUpdateLocation_MemberNotFound(t *testing.T) {
	f := setupService(t)

	err := f.service.UpdateLocation(context.Background(), 42, &member.LocationRequest{
		Address:   "새로운 주소",
		Latitude:  float64Ptr(127.12345),
		Longitude: float64Ptr(37.12345),
	})

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.Empty(t, f.store.SaveCalls())
}

func TestUpdateProfileImage_Success(t *testing.T) {
	// Given: image store confirms the upload
	f := setupService(t)
	id := seedMember(t, f)

	var uploadedKey string
	f.imageStore.UploadFunc = func(_ context.Context, file storage.ImageFile, key string) storage.UploadState {
		uploadedKey = key
		body, err := io.ReadAll(file.Reader)
		require.NoError(t, err)
		assert.Equal(t, "test", string(body))
		return storage.Uploaded("https://store/x.jpg")
	}

	// When
	err := f.service.UpdateProfileImage(context.Background(), id, testImage())

	// Then
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploadedKey, "profile/1/"))
	assert.True(t, strings.HasSuffix(uploadedKey, ".png"))

	after, _ := f.store.Get(id)
	require.NotNil(t, after.ProfileImageURL)
	assert.Equal(t, "https://store/x.jpg", *after.ProfileImageURL)
	assert.Len(t, f.store.SaveCalls(), 1)
}

func TestUpdateProfileImage_ReplacesExistingImage(t *testing.T) {
	f := setupService(t)
	id := seedMember(t, f)

	require.NoError(t, f.service.UpdateProfileImage(context.Background(), id, testImage()))
	first, _ := f.store.Get(id)

	require.NoError(t, f.service.UpdateProfileImage(context.Background(), id, testImage()))
	second, _ := f.store.Get(id)

	require.NotNil(t, first.ProfileImageURL)
	require.NotNil(t, second.ProfileImageURL)
	assert.NotEqual(t, *first.ProfileImageURL, *second.ProfileImageURL)
	assert.Len(t, f.imageStore.Uploads(), 2)
}

func TestUpdateProfileImage_UploadFailed(t *testing.T) {
	testCases := []struct {
		name  string
		state storage.UploadState
	}{
		{name: "Failure without url", state: storage.NotUploaded()},
		{name: "Failure with url", state: storage.UploadState{URL: "https://store/x.jpg", Success: false}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			f := setupService(t)
			id := seedMember(t, f)
			f.imageStore.UploadFunc = func(context.Context, storage.ImageFile, string) storage.UploadState {
				return tc.state
			}

			// When
			err := f.service.UpdateProfileImage(context.Background(), id, testImage())

			// Then: nothing is persisted and the url stays absent
			assert.ErrorIs(t, err, member.ErrProfileImageNotUploaded)
			assert.Empty(t, f.store.SaveCalls())

			after, _ := f.store.Get(id)
			assert.Nil(t, after.ProfileImageURL)
		})
	}
}

func TestUpdateProfileImage_UploadFailedKeepsPreviousImage(t *testing.T) {
	f := setupService(t)
	id := seedMember(t, f)
	require.NoError(t, f.service.UpdateProfileImage(context.Background(), id, testImage()))
	before, _ := f.store.Get(id)

	f.imageStore.UploadFunc = func(context.Context, storage.ImageFile, string) storage.UploadState {
		return storage.NotUploaded()
	}
	err := f.service.UpdateProfileImage(context.Background(), id, testImage())

	assert.ErrorIs(t, err, member.ErrProfileImageNotUploaded)
	after, _ := f.store.Get(id)
	assert.Equal(t, before.ProfileImageURL, after.ProfileImageURL)
}

func TestUpdateProfileImage_MemberNotFound(t *testing.T) {
	f := setupService(t)
	uploaded := false
	f.imageStore.UploadFunc = func(context.Context, storage.ImageFile, string) storage.UploadState {
		uploaded = true
		return storage.Uploaded("https://store/x.jpg")
	}

	err := f.service.UpdateProfileImage(context.Background(), 42, testImage())

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.False(t, uploaded)
	assert.Empty(t, f.store.SaveCalls())
}

func TestUpdateProfileImage_SaveFailure(t *testing.T) {
	f := setupService(t)
	id := seedMember(t, f)
	f.store.SaveFunc = func(context.Context, *model.Member) (*model.Member, error) {
		return nil, errors.New("connection reset")
	}

	err := f.service.UpdateProfileImage(context.Background(), id, testImage())

	require.Error(t, err)
	assert.NotErrorIs(t, err, member.ErrProfileImageNotUploaded)

	after, _ := f.store.Get(id)
	assert.Nil(t, after.ProfileImageURL)
}

func setupServiceWithRepository(t *testing.T) (*member.MemberService, *member.MemberRepository, *testutil.FakeImageStore) {
	t.Helper()

	repository := setupRepository(t)
	imageStore := testutil.NewFakeImageStore()
	return member.NewMemberService(repository, testutil.NewTestPasswordHasher(), imageStore), repository, imageStore
}

func TestUpdateProfileImage_KeepsLocationChangedDuringUpload(t *testing.T) {
	// Given: a location update commits while the image upload is in flight
	service, repository, imageStore := setupServiceWithRepository(t)
	ctx := context.Background()

	saved, err := repository.Save(ctx, newMember(rawEmail, rawNickname))
	require.NoError(t, err)

	imageStore.UploadFunc = func(ctx context.Context, _ storage.ImageFile, key string) storage.UploadState {
		require.NoError(t, service.UpdateLocation(ctx, saved.ID, &member.LocationRequest{
			Address:   "서귀포시",
			Latitude:  float64Ptr(33.25),
			Longitude: float64Ptr(126.56),
		}))
		return storage.Uploaded(testutil.FakeImageBaseURL + key)
	}

	// When
	err = service.UpdateProfileImage(ctx, saved.ID, testImage())

	// Then: both changes survive
	require.NoError(t, err)

	found, err := repository.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "서귀포시", found.Address)
	assert.Equal(t, 33.25, found.Latitude)
	assert.Equal(t, 126.56, found.Longitude)
	require.NotNil(t, found.ProfileImageURL)
	assert.True(t, strings.HasPrefix(*found.ProfileImageURL, testutil.FakeImageBaseURL+"profile/"))
}

func TestUpdateLocation_KeepsProfileImage(t *testing.T) {
	// Given: a member whose profile image is already set
	service, repository, _ := setupServiceWithRepository(t)
	ctx := context.Background()

	saved, err := repository.Save(ctx, newMember(rawEmail, rawNickname))
	require.NoError(t, err)
	require.NoError(t, service.UpdateProfileImage(ctx, saved.ID, testImage()))

	before, err := repository.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, before.ProfileImageURL)

	// When
	err = service.UpdateLocation(ctx, saved.ID, &member.LocationRequest{
		Address:   "서귀포시",
		Latitude:  float64Ptr(33.25),
		Longitude: float64Ptr(126.56),
	})

	// Then
	require.NoError(t, err)

	after, err := repository.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "서귀포시", after.Address)
	require.NotNil(t, after.ProfileImageURL)
	assert.Equal(t, *before.ProfileImageURL, *after.ProfileImageURL)
}
