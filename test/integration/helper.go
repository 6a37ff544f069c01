package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL 健康检查URL
	PingURL = "http://localhost:8080/ping"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	ISBN    string `json:"isbn"`
	Author  string `json:"author"`
}

// InstanceData 副本响应数据
type InstanceData struct {
	ID      string `json:"id"`
	BookID  string `json:"book_id"`
	Imprint string `json:"imprint"`
	Status  string `json:"status"`
}

// BookDetailData 详情接口响应(裸视图,无统一包装)
type BookDetailData struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies []struct {
		Imprint string `json:"imprint"`
		Status  string `json:"status"`
	} `json:"copies"`
}

// RequireServer 检查被测服务是否在运行,不可达时跳过测试
func RequireServer(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("被测服务不可达,跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))

	return &result
}

// PutJSON 发送PUT请求并解析JSON响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "JSON序列化失败")

	req, err := http.NewRequest("PUT", url, bytes.NewBuffer(jsonData))
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))

	return &result
}

// GetJSON 发送GET请求并解析统一包装的JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err, "创建HTTP请求失败")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(body))

	return &result
}

// GetRaw 发送GET请求并返回原始状态码与响应体
// 详情接口不使用统一包装,错误时返回纯文本,需要原始访问
func GetRaw(t *testing.T, url string) (int, []byte) {
	client := &http.Client{Timeout: Timeout}
	resp, err := client.Get(url)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return resp.StatusCode, body
}

// GenerateTestEmail 生成唯一的测试邮箱
// 使用时间戳确保邮箱唯一性，避免测试重复运行时邮箱冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN
// ISBN-13格式：978 + 10位数字,使用时间戳的后10位确保唯一性
func GenerateTestISBN() string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("978%010d", timestamp%10000000000)
}

// RegisterTestLibrarian 注册测试馆员并返回Token
// 封装了注册+登录的完整流程,让测试更关注业务逻辑
func RegisterTestLibrarian(t *testing.T, nickname string) (email string, token string) {
	email = GenerateTestEmail(nickname)
	registerReq := map[string]string{
		"email":    email,
		"password": "Test1234",
		"nickname": nickname,
	}

	registerResp := PostJSON(t, BaseURL+"/librarians/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}

	loginResp := PostJSON(t, BaseURL+"/librarians/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// AddTestBook 入藏测试图书并返回图书ID
func AddTestBook(t *testing.T, token string, title string, authorName string) string {
	bookReq := map[string]interface{}{
		"title":       title,
		"summary":     "集成测试用图书",
		"isbn":        GenerateTestISBN(),
		"author_name": authorName,
	}

	bookResp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.Equal(t, 0, bookResp.Code, "图书入藏失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}

// AddTestInstance 入库测试副本并返回副本ID
func AddTestInstance(t *testing.T, token string, bookID string, imprint string) string {
	instReq := map[string]string{
		"book_id": bookID,
		"imprint": imprint,
	}

	instResp := PostJSON(t, BaseURL+"/instances", instReq, token)
	require.Equal(t, 0, instResp.Code, "副本入库失败: %s", instResp.Message)

	var instData InstanceData
	err := json.Unmarshal(instResp.Data, &instData)
	require.NoError(t, err, "解析副本响应失败")

	return instData.ID
}
