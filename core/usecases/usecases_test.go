package usecases_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jharlan/tasklane/core/domain"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/repositories/accessrepo"
	"github.com/jharlan/tasklane/core/repositories/commentsrepo"
	"github.com/jharlan/tasklane/core/repositories/tagsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasklistsrepo"
	"github.com/jharlan/tasklane/core/repositories/tasksrepo"
	"github.com/jharlan/tasklane/core/repositories/usersrepo"
	"github.com/jharlan/tasklane/core/scaffolding/fop"
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/sdk/logger"
)

// memStore backs all six storers with maps and simulates the cascades the
// real schema enforces with foreign keys.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]domain.User
	lists    map[uuid.UUID]domain.TaskList
	tasks    map[uuid.UUID]domain.Task
	tags     map[uuid.UUID]domain.Tag
	comments map[uuid.UUID]domain.Comment
	grants   map[[2]uuid.UUID]domain.TaskAccess

	listTitleProbes int
	tagNameProbes   int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]domain.User{},
		lists:    map[uuid.UUID]domain.TaskList{},
		tasks:    map[uuid.UUID]domain.Task{},
		tags:     map[uuid.UUID]domain.Tag{},
		comments: map[uuid.UUID]domain.Comment{},
		grants:   map[[2]uuid.UUID]domain.TaskAccess{},
	}
}

func (m *memStore) deleteTaskLocked(taskID uuid.UUID) {
	delete(m.tasks, taskID)
	for id, c := range m.comments {
		if c.TaskID == taskID {
			delete(m.comments, id)
		}
	}
	for key := range m.grants {
		if key[0] == taskID {
			delete(m.grants, key)
		}
	}
}

type memUsers struct{ m *memStore }

func (s memUsers) Create(_ context.Context, user domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == user.Email || u.Username == user.Username {
			return usersrepo.ErrUserExists
		}
	}
	s.m.users[user.ID] = user
	return nil
}

func (s memUsers) Get(_ context.Context, userID uuid.UUID) (domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	user, ok := s.m.users[userID]
	if !ok {
		return domain.User{}, usersrepo.ErrUserNotFound
	}
	return user, nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, usersrepo.ErrUserNotFound
}

func (s memUsers) List(_ context.Context, _ fop.Page) ([]domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]domain.User, 0, len(s.m.users))
	for _, u := range s.m.users {
		out = append(out, u)
	}
	return out, nil
}

func (s memUsers) Delete(_ context.Context, userID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.users[userID]; !ok {
		return usersrepo.ErrUserNotFound
	}
	delete(s.m.users, userID)
	for id, l := range s.m.lists {
		if l.OwnerID == userID {
			delete(s.m.lists, id)
		}
	}
	for id, t := range s.m.tasks {
		if t.OwnerID == userID {
			s.m.deleteTaskLocked(id)
		}
	}
	for id, g := range s.m.tags {
		if g.OwnerID == userID {
			delete(s.m.tags, id)
		}
	}
	for key := range s.m.grants {
		if key[1] == userID {
			delete(s.m.grants, key)
		}
	}
	return nil
}

type memLists struct{ m *memStore }

func (s memLists) Create(_ context.Context, list domain.TaskList) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.lists[list.ID] = list
	return nil
}

func (s memLists) Get(_ context.Context, listID uuid.UUID) (domain.TaskList, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	list, ok := s.m.lists[listID]
	if !ok {
		return domain.TaskList{}, tasklistsrepo.ErrTaskListNotFound
	}
	return list, nil
}

func (s memLists) Update(_ context.Context, list domain.TaskList) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.lists[list.ID]; !ok {
		return tasklistsrepo.ErrTaskListNotFound
	}
	s.m.lists[list.ID] = list
	return nil
}

func (s memLists) Delete(_ context.Context, listID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.lists[listID]; !ok {
		return tasklistsrepo.ErrTaskListNotFound
	}
	delete(s.m.lists, listID)
	for id, t := range s.m.tasks {
		if t.TaskListID == listID {
			s.m.deleteTaskLocked(id)
		}
	}
	return nil
}

func (s memLists) ListByOwner(_ context.Context, ownerID uuid.UUID, _ fop.Page) ([]domain.TaskList, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.TaskList
	for _, l := range s.m.lists {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s memLists) ExistsByTitle(_ context.Context, ownerID uuid.UUID, title string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.listTitleProbes++
	for _, l := range s.m.lists {
		if l.OwnerID == ownerID && l.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (s memLists) FindWithOverdue(_ context.Context, before time.Time) (domain.TaskList, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, t := range s.m.tasks {
		if t.DueDate != nil && t.DueDate.Before(before) {
			if l, ok := s.m.lists[t.TaskListID]; ok {
				return l, nil
			}
		}
	}
	return domain.TaskList{}, tasklistsrepo.ErrTaskListNotFound
}

type memTasks struct{ m *memStore }

func (s memTasks) Create(_ context.Context, task domain.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.tasks[task.ID] = task
	return nil
}

func (s memTasks) Get(_ context.Context, taskID uuid.UUID) (domain.Task, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	task, ok := s.m.tasks[taskID]
	if !ok {
		return domain.Task{}, tasksrepo.ErrTaskNotFound
	}
	return task, nil
}

func (s memTasks) Update(_ context.Context, task domain.Task) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tasks[task.ID]; !ok {
		return tasksrepo.ErrTaskNotFound
	}
	s.m.tasks[task.ID] = task
	return nil
}

func (s memTasks) Delete(_ context.Context, taskID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tasks[taskID]; !ok {
		return tasksrepo.ErrTaskNotFound
	}
	s.m.deleteTaskLocked(taskID)
	return nil
}

func (s memTasks) ListByList(_ context.Context, listID uuid.UUID, _ fop.Page) ([]domain.Task, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.Task
	for _, t := range s.m.tasks {
		if t.TaskListID == listID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s memTasks) ListSharedWith(_ context.Context, userID uuid.UUID, _ fop.Page) ([]domain.Task, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.Task
	for key := range s.m.grants {
		if key[1] == userID {
			if t, ok := s.m.tasks[key[0]]; ok {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (s memTasks) DeleteOverdue(_ context.Context, listID uuid.UUID, before time.Time) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var count int64
	for id, t := range s.m.tasks {
		if t.TaskListID == listID && t.DueDate != nil && t.DueDate.Before(before) {
			s.m.deleteTaskLocked(id)
			count++
		}
	}
	return count, nil
}

func (s memTasks) DetachTag(_ context.Context, tagID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, t := range s.m.tasks {
		if t.TagID != nil && *t.TagID == tagID {
			t.TagID = nil
			s.m.tasks[id] = t
		}
	}
	return nil
}

type memTags struct{ m *memStore }

func (s memTags) Create(_ context.Context, tag domain.Tag) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.tags[tag.ID] = tag
	return nil
}

func (s memTags) Get(_ context.Context, tagID uuid.UUID) (domain.Tag, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	tag, ok := s.m.tags[tagID]
	if !ok {
		return domain.Tag{}, tagsrepo.ErrTagNotFound
	}
	return tag, nil
}

func (s memTags) Update(_ context.Context, tag domain.Tag) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tags[tag.ID]; !ok {
		return tagsrepo.ErrTagNotFound
	}
	s.m.tags[tag.ID] = tag
	return nil
}

func (s memTags) Delete(_ context.Context, tagID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.tags[tagID]; !ok {
		return tagsrepo.ErrTagNotFound
	}
	delete(s.m.tags, tagID)
	return nil
}

func (s memTags) ListByOwner(_ context.Context, ownerID uuid.UUID, _ fop.Page) ([]domain.Tag, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.Tag
	for _, g := range s.m.tags {
		if g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s memTags) ExistsByName(_ context.Context, ownerID uuid.UUID, name string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.tagNameProbes++
	for _, g := range s.m.tags {
		if g.OwnerID == ownerID && g.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type memComments struct{ m *memStore }

func (s memComments) Create(_ context.Context, comment domain.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.comments[comment.ID] = comment
	return nil
}

func (s memComments) Get(_ context.Context, commentID uuid.UUID) (domain.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	comment, ok := s.m.comments[commentID]
	if !ok {
		return domain.Comment{}, commentsrepo.ErrCommentNotFound
	}
	return comment, nil
}

func (s memComments) Delete(_ context.Context, commentID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.comments[commentID]; !ok {
		return commentsrepo.ErrCommentNotFound
	}
	delete(s.m.comments, commentID)
	return nil
}

func (s memComments) ListByTask(_ context.Context, taskID uuid.UUID, _ fop.Page) ([]domain.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.Comment
	for _, c := range s.m.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memGrants struct{ m *memStore }

func (s memGrants) Create(_ context.Context, grant domain.TaskAccess) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := [2]uuid.UUID{grant.TaskID, grant.UserID}
	if _, ok := s.m.grants[key]; ok {
		return accessrepo.ErrAccessExists
	}
	s.m.grants[key] = grant
	return nil
}

func (s memGrants) Exists(_ context.Context, taskID, userID uuid.UUID) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	_, ok := s.m.grants[[2]uuid.UUID{taskID, userID}]
	return ok, nil
}

func (s memGrants) Delete(_ context.Context, taskID, userID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	key := [2]uuid.UUID{taskID, userID}
	if _, ok := s.m.grants[key]; !ok {
		return accessrepo.ErrAccessNotFound
	}
	delete(s.m.grants, key)
	return nil
}

func (s memGrants) ListByTask(_ context.Context, taskID uuid.UUID) ([]domain.TaskAccess, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []domain.TaskAccess
	for key, g := range s.m.grants {
		if key[0] == taskID {
			out = append(out, g)
		}
	}
	return out, nil
}

// memTransactor hands out the same bundle for every unit of work; the
// tests assert end state, not isolation.
type memTransactor struct {
	repos *repositories.Bundle
}

func (t *memTransactor) Begin(_ context.Context) (repositories.UnitOfWork, error) {
	return &memUow{repos: t.repos}, nil
}

type memUow struct {
	repos *repositories.Bundle
}

func (u *memUow) Repos() *repositories.Bundle      { return u.repos }
func (u *memUow) Commit(_ context.Context) error   { return nil }
func (u *memUow) Rollback(_ context.Context) error { return nil }

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newFixture() (*memStore, *usecases.Usecases) {
	m := newMemStore()
	log := logger.NewDefault(logger.WithOutput(io.Discard))

	repos := &repositories.Bundle{
		Users:     usersrepo.NewRepository(log, memUsers{m}),
		TaskLists: tasklistsrepo.NewRepository(log, memLists{m}),
		Tasks:     tasksrepo.NewRepository(log, memTasks{m}),
		Tags:      tagsrepo.NewRepository(log, memTags{m}),
		Comments:  commentsrepo.NewRepository(log, memComments{m}),
		Access:    accessrepo.NewRepository(log, memGrants{m}),
	}

	uc := usecases.New(usecases.Config{
		Log:        log,
		Repos:      repos,
		Transactor: &memTransactor{repos: repos},
		Clock:      fixedClock{now: testNow},
	})

	return m, uc
}

func registerUser(t *testing.T, uc *usecases.Usecases, email, username string) domain.User {
	t.Helper()
	res, err := uc.RegisterUser.Send(context.Background(), usecases.RegisterUser{Email: email, Username: username})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("RegisterUser failed: %s", res.Failure.Message)
	}
	return res.Value
}

func createList(t *testing.T, uc *usecases.Usecases, ownerID uuid.UUID, title string) domain.TaskList {
	t.Helper()
	res, err := uc.CreateTaskList.Send(context.Background(), usecases.CreateTaskList{OwnerID: ownerID, Title: title})
	if err != nil {
		t.Fatalf("CreateTaskList: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("CreateTaskList failed: %s", res.Failure.Message)
	}
	return res.Value
}

func createTask(t *testing.T, uc *usecases.Usecases, listID, ownerID uuid.UUID, title string) domain.Task {
	t.Helper()
	res, err := uc.CreateTask.Send(context.Background(), usecases.CreateTask{ListID: listID, OwnerID: ownerID, Title: title})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("CreateTask failed: %s", res.Failure.Message)
	}
	return res.Value
}

func shareTask(t *testing.T, uc *usecases.Usecases, taskID, ownerID, userID uuid.UUID) {
	t.Helper()
	res, err := uc.GrantTaskAccess.Send(context.Background(), usecases.GrantTaskAccess{TaskID: taskID, OwnerID: ownerID, UserID: userID})
	if err != nil {
		t.Fatalf("GrantTaskAccess: %v", err)
	}
	if !res.Succeeded() {
		t.Fatalf("GrantTaskAccess failed: %s", res.Failure.Message)
	}
}
