package contact

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"folio/models"
)

func validMessage() Message {
	return Message{Name: "Ada", Email: "ada@example.com", Body: "Hello there", Remote: "10.1.2.3:4000"}
}

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		msg    Message
		fields []string
	}{
		{"valid", validMessage(), nil},
		{"missing everything", Message{}, []string{"name", "email", "message"}},
		{"bad email", Message{Name: "Ada", Email: "ada", Body: "hi"}, []string{"email"}},
		{"name too long", Message{Name: strings.Repeat("a", 121), Email: "ada@example.com", Body: "hi"}, []string{"name"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.msg.Validate()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			for _, field := range tt.fields {
				if verr.Fields[field] == "" {
					t.Fatalf("expected error for %q, got %v", field, verr.Fields)
				}
			}
			if len(verr.Fields) != len(tt.fields) {
				t.Fatalf("unexpected fields %v", verr.Fields)
			}
		})
	}
}

func TestSubmitResetsFormOnSuccess(t *testing.T) {
	t.Parallel()

	var got Message
	form, err := Submit(context.Background(), SubmitterFunc(func(_ context.Context, m Message) error {
		got = m
		return nil
	}), Message{Name: "  Ada ", Email: "ada@example.com", Body: "Hi\n"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if form.Status != StatusSent || form.Notice != SentNotice {
		t.Fatalf("form = %+v", form)
	}
	if form.Name != "" || form.Email != "" || form.Message != "" {
		t.Fatalf("expected inputs reset, got %+v", form)
	}
	if got.Name != "Ada" || got.Body != "Hi" {
		t.Fatalf("submitter received %+v, want trimmed message", got)
	}
}

func TestSubmitPreservesInputOnFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("smtp down")
	form, err := Submit(context.Background(), SubmitterFunc(func(context.Context, Message) error {
		return boom
	}), validMessage())
	if !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v, want %v", err, boom)
	}
	if form.Status != StatusFailed || form.Notice != FailedNotice {
		t.Fatalf("form = %+v", form)
	}
	if form.Name != "Ada" || form.Email != "ada@example.com" || form.Message != "Hello there" {
		t.Fatalf("expected inputs preserved, got %+v", form)
	}
}

func TestSubmitRejectsInvalidWithoutCallingSubmitter(t *testing.T) {
	t.Parallel()

	called := false
	form, err := Submit(context.Background(), SubmitterFunc(func(context.Context, Message) error {
		called = true
		return nil
	}), Message{Name: "Ada", Email: "nope"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if called {
		t.Fatal("submitter must not be called for invalid messages")
	}
	if form.FieldError("email") == "" || form.FieldError("message") == "" {
		t.Fatalf("expected field errors, got %v", form.Errors)
	}
	if form.Email != "nope" {
		t.Fatalf("expected email preserved, got %q", form.Email)
	}
}

func TestDelayedWaitsThenForwards(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := Delayed{Delay: 20 * time.Millisecond, Next: SubmitterFunc(func(context.Context, Message) error {
		calls.Add(1)
		return nil
	})}

	start := time.Now()
	if err := d.Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("Submit() returned after %s", elapsed)
	}
	if calls.Load() != 1 {
		t.Fatalf("Next called %d times", calls.Load())
	}
}

func TestDelayedCancelledNeverForwards(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	d := Delayed{Delay: time.Hour, Next: SubmitterFunc(func(context.Context, Message) error {
		calls.Add(1)
		return nil
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Submit(ctx, validMessage()) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Submit() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Submit() did not return after cancellation")
	}
	time.Sleep(5 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatal("Next must not be called after cancellation")
	}
}

func TestDelayedStub(t *testing.T) {
	t.Parallel()

	if err := (Delayed{}).Submit(context.Background(), validMessage()); err != nil {
		t.Fatalf("stub Submit() error = %v", err)
	}
}

func TestFanoutStopsAtFirstError(t *testing.T) {
	t.Parallel()

	var order []string
	boom := errors.New("boom")
	f := Fanout{
		SubmitterFunc(func(context.Context, Message) error { order = append(order, "a"); return nil }),
		nil,
		SubmitterFunc(func(context.Context, Message) error { order = append(order, "b"); return boom }),
		SubmitterFunc(func(context.Context, Message) error { order = append(order, "c"); return nil }),
	}
	if err := f.Submit(context.Background(), validMessage()); !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v", err)
	}
	if strings.Join(order, ",") != "a,b" {
		t.Fatalf("call order = %v", order)
	}
}

func TestRecorderStoresHashedRemote(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open("file:contact-recorder?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.ContactMessage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	if err := (Recorder{DB: db}).Submit(ctx, validMessage()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	second := validMessage()
	second.Name = "Grace"
	if err := (Recorder{DB: db}).Submit(ctx, second); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	messages, err := Recent(ctx, db, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Name != "Grace" {
		t.Fatalf("expected newest first, got %q", messages[0].Name)
	}
	if messages[0].RemoteHash == "" || strings.Contains(messages[0].RemoteHash, "10.1.2.3") {
		t.Fatalf("unexpected remote hash %q", messages[0].RemoteHash)
	}
}

func TestRecorderWithoutDatabase(t *testing.T) {
	t.Parallel()

	if err := (Recorder{}).Submit(context.Background(), validMessage()); err == nil {
		t.Fatal("expected error without database")
	}
	if _, err := Recent(context.Background(), nil, 5); err == nil {
		t.Fatal("expected error without database")
	}
}

func TestMailerComposesMessage(t *testing.T) {
	t.Parallel()

	var (
		gotAddr string
		gotTo   []string
		gotMsg  string
		gotAuth smtp.Auth
	)
	m := Mailer{
		Host: "smtp.example.com",
		Port: 587,
		User: "folio",
		Pass: "secret",
		From: "site@example.com",
		To:   "me@example.com",
		Send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg, gotAuth = addr, to, string(msg), a
			return nil
		},
	}

	msg := validMessage()
	msg.Name = "Ada\r\nBcc: evil@example.com"
	if err := m.Submit(context.Background(), msg); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "me@example.com" {
		t.Fatalf("to = %v", gotTo)
	}
	if gotAuth == nil {
		t.Fatal("expected plain auth when user is set")
	}
	if !strings.Contains(gotMsg, "Reply-To: ada@example.com\r\n") {
		t.Fatalf("missing reply-to header in %q", gotMsg)
	}
	if strings.Contains(gotMsg, "\r\nBcc:") {
		t.Fatalf("header injection not neutralised: %q", gotMsg)
	}
	if !strings.HasSuffix(gotMsg, "Hello there\r\n") {
		t.Fatalf("unexpected body in %q", gotMsg)
	}
}

func TestMailerWrapsSendError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	m := Mailer{Host: "localhost", Port: 25, To: "me@example.com", Send: func(string, smtp.Auth, string, []string, []byte) error {
		return boom
	}}
	if err := m.Submit(context.Background(), validMessage()); !errors.Is(err, boom) {
		t.Fatalf("Submit() error = %v, want wrapped %v", err, boom)
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	want := map[Status]string{StatusIdle: "idle", StatusSubmitting: "submitting", StatusSent: "sent", StatusFailed: "failed"}
	for status, name := range want {
		if status.String() != name {
			t.Fatalf("Status(%d).String() = %q, want %q", status, status.String(), name)
		}
	}
}
