package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/bneller/littlesteps2/internal/model"
)

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	classrooms map[uint]*model.Classroom
	nextID     uint
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{classrooms: make(map[uint]*model.Classroom), nextID: 1}
}

func (m *mockClassroomRepo) Create(_ context.Context, classroom *model.Classroom) error {
	if classroom.ID == 0 {
		classroom.ID = m.nextID
		m.nextID++
	}
	m.classrooms[classroom.ID] = classroom
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id uint) (*model.Classroom, error) {
	if c, ok := m.classrooms[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// List 与真实仓库保持同一契约：按年龄段下界升序
func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	result := make([]model.Classroom, 0, len(m.classrooms))
	for _, c := range m.classrooms {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].MinAgeMonths != result[j].MinAgeMonths {
			return result[i].MinAgeMonths < result[j].MinAgeMonths
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockClassroomRepo) Update(_ context.Context, classroom *model.Classroom) error {
	m.classrooms[classroom.ID] = classroom
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.classrooms[id]; !ok {
		return false, nil
	}
	delete(m.classrooms, id)
	return true, nil
}

// ── Mock ChildRepository ──

type mockChildRepo struct {
	children map[uint]*model.Child
	nextID   uint
}

func newMockChildRepo() *mockChildRepo {
	return &mockChildRepo{children: make(map[uint]*model.Child), nextID: 1}
}

func (m *mockChildRepo) Create(_ context.Context, child *model.Child) error {
	if child.ID == 0 {
		child.ID = m.nextID
		m.nextID++
	}
	m.children[child.ID] = child
	return nil
}

func (m *mockChildRepo) GetByID(_ context.Context, id uint) (*model.Child, error) {
	if c, ok := m.children[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChildRepo) List(_ context.Context) ([]model.Child, error) {
	result := make([]model.Child, 0, len(m.children))
	for _, c := range m.children {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].BirthDate.Equal(result[j].BirthDate) {
			return result[i].BirthDate.Before(result[j].BirthDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockChildRepo) Update(_ context.Context, child *model.Child) error {
	m.children[child.ID] = child
	return nil
}

func (m *mockChildRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.children[id]; !ok {
		return false, nil
	}
	delete(m.children, id)
	return true, nil
}

// ── Mock AdminUserRepository ──

type mockAdminUserRepo struct {
	users  map[uint]*model.AdminUser
	nextID uint
}

func newMockAdminUserRepo() *mockAdminUserRepo {
	return &mockAdminUserRepo{users: make(map[uint]*model.AdminUser), nextID: 1}
}

func (m *mockAdminUserRepo) Create(_ context.Context, user *model.AdminUser) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockAdminUserRepo) GetByID(_ context.Context, id uint) (*model.AdminUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminUserRepo) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}
