package librarian

import (
	"context"
	"testing"

	apperrors "github.com/luocheng/library/pkg/errors"
)

// memRepo 馆员仓储内存实现(测试替身)
type memRepo struct {
	byEmail map[string]*Librarian
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*Librarian)}
}

func (r *memRepo) Create(ctx context.Context, lib *Librarian) error {
	if _, ok := r.byEmail[lib.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	r.byEmail[lib.Email] = lib
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id string) (*Librarian, error) {
	for _, lib := range r.byEmail {
		if lib.ID == id {
			return lib, nil
		}
	}
	return nil, apperrors.ErrLibrarianNotFound
}

func (r *memRepo) FindByEmail(ctx context.Context, email string) (*Librarian, error) {
	lib, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrLibrarianNotFound
	}
	return lib, nil
}

func (r *memRepo) Update(ctx context.Context, lib *Librarian) error {
	r.byEmail[lib.Email] = lib
	return nil
}

// TestService_Register 测试注册的业务规则校验
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("正常注册", func(t *testing.T) {
		svc := NewService(newMemRepo())

		lib, err := svc.Register(ctx, "admin@library.com", "Test1234", "测试馆员")
		if err != nil {
			t.Fatalf("注册失败: %v", err)
		}

		if lib.ID == "" {
			t.Error("馆员ID不应为空")
		}
		// 密码应为bcrypt哈希,不得存明文
		if lib.Password == "Test1234" {
			t.Error("密码不应明文存储")
		}
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		svc := NewService(newMemRepo())

		_, err := svc.Register(ctx, "not-an-email", "Test1234", "测试馆员")
		if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidParams {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
		}
	})

	t.Run("密码缺少字母", func(t *testing.T) {
		svc := NewService(newMemRepo())

		_, err := svc.Register(ctx, "admin@library.com", "12345678", "测试馆员")
		if apperrors.CodeOf(err) != apperrors.ErrCodeWeakPassword {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeWeakPassword, apperrors.CodeOf(err))
		}
	})

	t.Run("密码过短", func(t *testing.T) {
		svc := NewService(newMemRepo())

		_, err := svc.Register(ctx, "admin@library.com", "Abc1", "测试馆员")
		if apperrors.CodeOf(err) != apperrors.ErrCodeWeakPassword {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeWeakPassword, apperrors.CodeOf(err))
		}
	})

	t.Run("邮箱重复", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo)

		if _, err := svc.Register(ctx, "dup@library.com", "Test1234", "馆员甲"); err != nil {
			t.Fatalf("首次注册失败: %v", err)
		}

		_, err := svc.Register(ctx, "dup@library.com", "Test1234", "馆员乙")
		if apperrors.CodeOf(err) != apperrors.ErrCodeEmailDuplicate {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeEmailDuplicate, apperrors.CodeOf(err))
		}
	})
}

// TestService_Login 测试登录验证
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewService(repo)

	if _, err := svc.Register(ctx, "login@library.com", "Test1234", "测试馆员"); err != nil {
		t.Fatalf("准备数据失败: %v", err)
	}

	t.Run("正确密码", func(t *testing.T) {
		lib, err := svc.Login(ctx, "login@library.com", "Test1234")
		if err != nil {
			t.Fatalf("登录失败: %v", err)
		}
		if lib.Email != "login@library.com" {
			t.Errorf("邮箱错误: %s", lib.Email)
		}
	})

	t.Run("错误密码", func(t *testing.T) {
		_, err := svc.Login(ctx, "login@library.com", "Wrong1234")
		if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidPassword {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeInvalidPassword, apperrors.CodeOf(err))
		}
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@library.com", "Test1234")
		if apperrors.CodeOf(err) != apperrors.ErrCodeLibrarianNotFound {
			t.Errorf("错误码应为%d, 实际为%d", apperrors.ErrCodeLibrarianNotFound, apperrors.CodeOf(err))
		}
	})
}
