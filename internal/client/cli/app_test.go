package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/avelichko/skillswap/internal/client/api"
	"github.com/avelichko/skillswap/internal/client/forms"
	"github.com/avelichko/skillswap/internal/client/models"
	"github.com/avelichko/skillswap/internal/client/repositories/pending"
	"github.com/avelichko/skillswap/internal/client/session"
)

var errBadCode = errors.New("incorrect verification code")

type fakeClient struct {
	api.Client

	listResult   []*models.SwapRequest
	listCalls    int
	people       []*models.Identity
	createCalls  int
	verifyErr    error
	verifyResult *models.Identity
	sendErr      error
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SendOTP(ctx context.Context, email, userName string) error {
	return f.sendErr
}

func (f *fakeClient) VerifyOTP(ctx context.Context, email, code string) (*models.Identity, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.verifyResult, nil
}

func (f *fakeClient) Signup(ctx context.Context, name, email, password, location string) (*models.Identity, error) {
	return &models.Identity{ID: "u-new", Name: name, Email: email, Location: location}, nil
}

func (f *fakeClient) ListSwapRequests(ctx context.Context) ([]*models.SwapRequest, error) {
	f.listCalls++
	return f.listResult, nil
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]*models.Identity, error) {
	return f.people, nil
}

func (f *fakeClient) CreateSwapRequest(ctx context.Context, targetID, message string) (*models.SwapRequest, error) {
	f.createCalls++
	return &models.SwapRequest{ID: "new", TargetID: targetID, Message: message}, nil
}

func (f *fakeClient) UpdateSwapRequest(ctx context.Context, id, senderSkill, receiverSkill, message string) (*models.SwapRequest, error) {
	return &models.SwapRequest{ID: id, SenderSkill: senderSkill, ReceiverSkill: receiverSkill, Message: message}, nil
}

type fakePending struct {
	stored  *pending.Verification
	saved   []pending.Verification
	cleared int
}

func (f *fakePending) Get(ctx context.Context) (*pending.Verification, error) { return f.stored, nil }
func (f *fakePending) Set(ctx context.Context, v pending.Verification) error {
	f.stored = &v
	f.saved = append(f.saved, v)
	return nil
}
func (f *fakePending) Clear(ctx context.Context) error {
	f.stored = nil
	f.cleared++
	return nil
}

func newTestApp(client *fakeClient, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := &App{
		client:   client,
		sessions: session.NewStore(client),
		pending:  &fakePending{},
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      &out,
	}
	a.editForm = forms.NewSwapEditForm(client, a.invalidateSwapCache)
	return a, &out
}
