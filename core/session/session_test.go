package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/user"
	"github.com/trezcool/eduverse/services/email"
	"github.com/trezcool/eduverse/storage/kv/inmemkv"
	"github.com/trezcool/eduverse/tests"
)

func setup(t *testing.T) (*session.Session, *inmemkv.Store) {
	conf := testutil.NewConfig()
	mgr := session.NewManager(conf, testutil.NewUserService(t), emailsvc.NewConsoleServiceMock(conf), core.NopLogger{})
	kv := inmemkv.New()
	sess, err := mgr.Open(context.Background(), kv, "visitor-1")
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return sess, kv
}

func TestSession_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantID   string
	}{
		{"student", "john.doe@example.com", user.DemoPassword, nil, "1"},
		{"instructor", "sarah.johnson@example.com", user.DemoPassword, nil, "2"},
		{"admin", "admin@elearning.com", user.DemoPassword, nil, "3"},
		{"wrong password", "john.doe@example.com", "password", session.ErrInvalidCredentials, ""},
		{"unknown email", "jane@example.com", user.DemoPassword, session.ErrInvalidCredentials, ""},
		{"email is case sensitive", "JOHN.DOE@example.com", user.DemoPassword, session.ErrInvalidCredentials, ""},
		{"padded email", "  john.doe@example.com\t", user.DemoPassword, session.ErrInvalidCredentials, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, _ := setup(t)
			err := sess.Login(context.Background(), tt.email, tt.password)
			assert.Equal(t, tt.wantErr, err)

			usr, ok := sess.User()
			assert.Equal(t, tt.wantErr == nil, ok)
			assert.Equal(t, tt.wantErr == nil, sess.IsAuthenticated())
			assert.Equal(t, tt.wantID, usr.ID)
		})
	}
}

func TestSession_Login_failureKeepsState(t *testing.T) {
	sess, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, sess.Login(ctx, "john.doe@example.com", user.DemoPassword))

	err := sess.Login(ctx, "admin@elearning.com", "nope")
	assert.Equal(t, session.ErrInvalidCredentials, err)

	usr, ok := sess.User()
	assert.True(t, ok)
	assert.Equal(t, "1", usr.ID)
}

func TestSession_Login_latency(t *testing.T) {
	sess, _ := setup(t)
	start := time.Now()
	require.NoError(t, sess.Login(context.Background(), "john.doe@example.com", user.DemoPassword))
	assert.GreaterOrEqual(t, time.Since(start), testutil.Latency)
}

func TestSession_Signup(t *testing.T) {
	emailsvc.ResetSentMessages()
	sess, _ := setup(t)
	ctx := context.Background()

	usr1, err := sess.Signup(ctx, "Ada Lovelace", "ada@example.com", "")
	require.NoError(t, err)
	assert.NotEmpty(t, usr1.ID)
	assert.Equal(t, user.RoleStudent, usr1.Role)
	assert.Equal(t, []string{}, usr1.EnrolledCourses)
	assert.Equal(t, "Ada Lovelace", usr1.Name)
	assert.True(t, sess.IsAuthenticated())

	usr2, err := sess.Signup(ctx, "Ada Lovelace", "ada@example.com", "whatever")
	require.NoError(t, err)
	assert.NotEqual(t, usr1.ID, usr2.ID)

	sent := emailsvc.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "ada@example.com", sent[0].To[0].Address)
}

func TestSession_Logout(t *testing.T) {
	sess, kv := setup(t)
	ctx := context.Background()

	require.NoError(t, sess.Logout(ctx))
	assert.False(t, sess.IsAuthenticated())

	require.NoError(t, sess.Login(ctx, "john.doe@example.com", user.DemoPassword))
	require.Equal(t, 1, kv.Len())
	require.NoError(t, sess.Logout(ctx))
	require.NoError(t, sess.Logout(ctx))
	assert.Equal(t, session.State{}, sess.State())
	assert.Equal(t, 0, kv.Len(), "the persisted snapshot is dropped")
}

func TestSession_persisted(t *testing.T) {
	conf := testutil.NewConfig()
	mgr := session.NewManager(conf, testutil.NewUserService(t), nil, core.NopLogger{})
	kv := inmemkv.New()
	ctx := context.Background()

	sess, err := mgr.Open(ctx, kv, "visitor-1")
	require.NoError(t, err)
	require.NoError(t, sess.Login(ctx, "admin@elearning.com", user.DemoPassword))

	_, err = kv.Get(ctx, core.Namespaced(session.StorageNamespace, "visitor-1"))
	require.NoError(t, err)

	reopened, err := mgr.Open(ctx, kv, "visitor-1")
	require.NoError(t, err)
	usr, ok := reopened.User()
	require.True(t, ok)
	assert.Equal(t, "3", usr.ID)
	assert.Nil(t, usr.PasswordHash)

	other, err := mgr.Open(ctx, kv, "visitor-2")
	require.NoError(t, err)
	assert.False(t, other.IsAuthenticated())
}

func TestSession_supersededLogin(t *testing.T) {
	sess, _ := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleErr = sess.Login(ctx, "john.doe@example.com", user.DemoPassword)
	}()
	time.Sleep(testutil.Latency / 4)

	require.NoError(t, sess.Login(ctx, "admin@elearning.com", user.DemoPassword))
	wg.Wait()

	assert.Equal(t, session.ErrSuperseded, staleErr)
	usr, _ := sess.User()
	assert.Equal(t, "3", usr.ID)
}

func TestSession_logoutSupersedesLogin(t *testing.T) {
	sess, _ := setup(t)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() { errc <- sess.Login(ctx, "john.doe@example.com", user.DemoPassword) }()
	time.Sleep(testutil.Latency / 4)

	require.NoError(t, sess.Logout(ctx))
	assert.Equal(t, session.ErrSuperseded, <-errc)
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_callerCancel(t *testing.T) {
	sess, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sess.Login(ctx, "john.doe@example.com", user.DemoPassword)
	assert.Equal(t, context.Canceled, err)
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_Subscribe(t *testing.T) {
	sess, _ := setup(t)
	ctx := context.Background()

	var got []bool
	unsub := sess.Subscribe(func(st session.State) { got = append(got, st.IsAuthenticated) })
	require.NoError(t, sess.Login(ctx, "john.doe@example.com", user.DemoPassword))
	require.NoError(t, sess.Logout(ctx))
	unsub()
	require.NoError(t, sess.Login(ctx, "john.doe@example.com", user.DemoPassword))

	assert.Equal(t, []bool{true, false}, got)
}
