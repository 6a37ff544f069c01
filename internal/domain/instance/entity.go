package instance

import (
	"time"
)

// Status 馆藏副本状态
type Status string

const (
	StatusAvailable   Status = "Available"   // 在架可借
	StatusOnLoan      Status = "On loan"     // 已借出
	StatusReserved    Status = "Reserved"    // 已预约
	StatusMaintenance Status = "Maintenance" // 维护中
)

// IsValid 校验状态值是否合法
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOnLoan, StatusReserved, StatusMaintenance:
		return true
	}
	return false
}

// BookInstance 馆藏副本实体
// 一种图书可有多个物理副本,各自独立流转状态
type BookInstance struct {
	ID        string     // 副本ID
	BookID    string     // 所属图书ID
	Imprint   string     // 版次/出版信息
	Status    Status     // 当前状态
	DueBack   *time.Time // 应还日期(仅借出/预约时有值)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBookInstance 创建馆藏副本,初始状态为在架可借
func NewBookInstance(id, bookID, imprint string) *BookInstance {
	now := time.Now()
	return &BookInstance{
		ID:        id,
		BookID:    bookID,
		Imprint:   imprint,
		Status:    StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Loan 借出副本
// 状态机:仅允许 Available/Reserved -> On loan
func (i *BookInstance) Loan(dueBack time.Time) error {
	if i.Status != StatusAvailable && i.Status != StatusReserved {
		return transitionError(i.Status, StatusOnLoan)
	}
	i.Status = StatusOnLoan
	i.DueBack = &dueBack
	i.UpdatedAt = time.Now()
	return nil
}

// Return 归还副本
// 状态机:仅允许 On loan -> Available
func (i *BookInstance) Return() error {
	if i.Status != StatusOnLoan {
		return transitionError(i.Status, StatusAvailable)
	}
	i.Status = StatusAvailable
	i.DueBack = nil
	i.UpdatedAt = time.Now()
	return nil
}

// Reserve 预约副本
// 状态机:仅允许 Available -> Reserved
func (i *BookInstance) Reserve(dueBack time.Time) error {
	if i.Status != StatusAvailable {
		return transitionError(i.Status, StatusReserved)
	}
	i.Status = StatusReserved
	i.DueBack = &dueBack
	i.UpdatedAt = time.Now()
	return nil
}

// SendToMaintenance 送修
// 状态机:仅允许 Available -> Maintenance(借出/预约中的副本需先归还)
func (i *BookInstance) SendToMaintenance() error {
	if i.Status != StatusAvailable {
		return transitionError(i.Status, StatusMaintenance)
	}
	i.Status = StatusMaintenance
	i.DueBack = nil
	i.UpdatedAt = time.Now()
	return nil
}

// MakeAvailable 恢复在架
// 状态机:仅允许 Maintenance -> Available
func (i *BookInstance) MakeAvailable() error {
	if i.Status != StatusMaintenance {
		return transitionError(i.Status, StatusAvailable)
	}
	i.Status = StatusAvailable
	i.UpdatedAt = time.Now()
	return nil
}
