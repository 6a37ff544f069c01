package librarian

import (
	"time"
)

// Librarian 馆员实体（聚合根）
// DDD设计说明：
// 1. Librarian是馆员聚合的根实体，承载登录与后台操作身份
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type Librarian struct {
	ID        string
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLibrarian 创建新馆员（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewLibrarian(id, email, hashedPassword, nickname string) *Librarian {
	now := time.Now()
	return &Librarian{
		ID:        id,
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateNickname 更新昵称（领域行为）
func (l *Librarian) UpdateNickname(nickname string) {
	l.Nickname = nickname
	l.UpdatedAt = time.Now()
}
