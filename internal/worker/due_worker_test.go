package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskboard/internal/models/task"
	"taskboard/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskLister struct {
	mock.Mock
}

func (m *MockTaskLister) GetAll(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

type recorder struct {
	got []notify.Notification
}

func (r *recorder) Notify(message string, kind notify.Kind) {
	r.got = append(r.got, notify.Notification{Message: message, Kind: kind})
}

var fixedNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

// TestDueWorker_Check тестирует однократное уведомление о просрочке
func TestDueWorker_Check(t *testing.T) {
	past := ptr(fixedNow.Add(-time.Hour))
	future := ptr(fixedNow.Add(time.Hour))

	tasks := []task.Task{
		{ID: 1, Title: "Prepare quarterly report", DueDate: past},
		{ID: 2, Title: "Done already", DueDate: past, Completed: true},
		{ID: 3, Title: "Later", DueDate: future},
		{ID: 4, Title: "No due date"},
	}

	lister := new(MockTaskLister)
	lister.On("GetAll", mock.Anything).Return(tasks, nil)
	rec := &recorder{}

	w := NewDueWorker(lister, rec, nil)
	w.now = func() time.Time { return fixedNow }

	assert.Equal(t, 1, w.Check(context.Background()))
	require.Len(t, rec.got, 1)
	assert.Equal(t, notify.Notification{Message: `Task "Prepare quarterly report" is overdue`, Kind: notify.KindInfo}, rec.got[0])

	assert.Equal(t, 0, w.Check(context.Background()))
	assert.Len(t, rec.got, 1)
}

// TestDueWorker_Reopened тестирует повторное уведомление после переоткрытия
func TestDueWorker_Reopened(t *testing.T) {
	past := ptr(fixedNow.Add(-time.Hour))
	lister := new(MockTaskLister)
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 1, Title: "a", DueDate: past}}, nil).Once()
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 1, Title: "a", DueDate: past, Completed: true}}, nil).Once()
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 1, Title: "a", DueDate: past}}, nil).Once()

	rec := &recorder{}
	w := NewDueWorker(lister, rec, nil)
	w.now = func() time.Time { return fixedNow }

	assert.Equal(t, 1, w.Check(context.Background()))
	assert.Equal(t, 0, w.Check(context.Background()))
	assert.Equal(t, 1, w.Check(context.Background()))
	lister.AssertExpectations(t)
}

// TestDueWorker_ReusedID тестирует очистку удалённых id и уведомление о задаче с тем же id
func TestDueWorker_ReusedID(t *testing.T) {
	past := ptr(fixedNow.Add(-time.Hour))
	earlier := ptr(fixedNow.Add(-2 * time.Hour))

	lister := new(MockTaskLister)
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 12, Title: "Old", DueDate: past}}, nil).Once()
	lister.On("GetAll", mock.Anything).Return([]task.Task{}, nil).Once()
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 12, Title: "New", DueDate: past}}, nil).Once()
	lister.On("GetAll", mock.Anything).Return([]task.Task{{ID: 12, Title: "New", DueDate: earlier}}, nil).Once()

	rec := &recorder{}
	w := NewDueWorker(lister, rec, nil)
	w.now = func() time.Time { return fixedNow }

	assert.Equal(t, 1, w.Check(context.Background()))
	assert.Equal(t, 0, w.Check(context.Background()))
	assert.Empty(t, w.notified)

	assert.Equal(t, 1, w.Check(context.Background()))
	assert.Equal(t, 1, w.Check(context.Background()))

	require.Len(t, rec.got, 3)
	assert.Equal(t, `Task "New" is overdue`, rec.got[1].Message)
	lister.AssertExpectations(t)
}

// TestDueWorker_Error тестирует пропуск тика при ошибке
func TestDueWorker_Error(t *testing.T) {
	lister := new(MockTaskLister)
	lister.On("GetAll", mock.Anything).Return(nil, errors.New("backend down"))
	rec := &recorder{}

	assert.Equal(t, 0, NewDueWorker(lister, rec, nil).Check(context.Background()))
	assert.Empty(t, rec.got)
}

// TestDueWorker_Start тестирует остановку по контексту
func TestDueWorker_Start(t *testing.T) {
	var calls atomic.Int32
	lister := new(MockTaskLister)
	lister.On("GetAll", mock.Anything).Run(func(mock.Arguments) { calls.Add(1) }).Return([]task.Task{}, nil)

	interval := 5 * time.Millisecond
	w := NewDueWorker(lister, notify.Discard{}, &interval)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return calls.Load() > 0
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
