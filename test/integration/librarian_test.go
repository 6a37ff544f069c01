package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 馆员模块集成测试
//
// 测试场景覆盖：
// 1. 注册+登录完整流程
// 2. 参数验证(邮箱格式、密码强度)
// 3. 邮箱重复注册
// 4. 登出后Token失效

// TestLibrarianRegister 测试馆员注册
func TestLibrarianRegister(t *testing.T) {
	RequireServer(t)

	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("register_ok")
		resp := PostJSON(t, BaseURL+"/librarians/register", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "测试馆员",
		}, "")

		assert.Equal(t, 0, resp.Code, "注册应该成功: %s", resp.Message)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/librarians/register", map[string]string{
			"email":    "not-an-email",
			"password": "Test1234",
			"nickname": "测试馆员",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "非法邮箱应该被拒绝")
	})

	t.Run("密码强度不足", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/librarians/register", map[string]string{
			"email":    GenerateTestEmail("weak_pwd"),
			"password": "12345678", // 纯数字
			"nickname": "测试馆员",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "弱密码应该被拒绝")
	})

	t.Run("邮箱重复注册", func(t *testing.T) {
		email := GenerateTestEmail("dup_email")
		req := map[string]string{
			"email":    email,
			"password": "Test1234",
			"nickname": "测试馆员",
		}

		first := PostJSON(t, BaseURL+"/librarians/register", req, "")
		require.Equal(t, 0, first.Code, "首次注册应该成功")

		second := PostJSON(t, BaseURL+"/librarians/register", req, "")
		assert.NotEqual(t, 0, second.Code, "重复邮箱应该被拒绝")
	})
}

// TestLibrarianLogin 测试馆员登录
func TestLibrarianLogin(t *testing.T) {
	RequireServer(t)

	email, _ := RegisterTestLibrarian(t, "login_test")

	t.Run("密码错误", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/librarians/login", map[string]string{
			"email":    email,
			"password": "Wrong1234",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "错误密码应该登录失败")
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/librarians/login", map[string]string{
			"email":    GenerateTestEmail("no_such"),
			"password": "Test1234",
		}, "")

		assert.NotEqual(t, 0, resp.Code, "不存在的邮箱应该登录失败")
	})
}

// TestLibrarianLogout 测试登出后Token失效
func TestLibrarianLogout(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestLibrarian(t, "logout_test")

	// 登出
	logoutResp := PostJSON(t, BaseURL+"/librarians/logout", nil, token)
	require.Equal(t, 0, logoutResp.Code, "登出失败: %s", logoutResp.Message)

	// 已登出的Token再访问受保护接口应失败
	resp := PostJSON(t, BaseURL+"/instances", map[string]string{
		"book_id": "any",
		"imprint": "any",
	}, token)
	assert.NotEqual(t, 0, resp.Code, "已登出Token应该被拒绝")
}
