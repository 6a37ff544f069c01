package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书详情接口集成测试
//
// 测试场景覆盖：
// 1. 入藏图书+入库副本后查询详情
// 2. 详情接口的纯文本404契约
// 3. 副本为空时copies为[]而非null

// TestBookDetail_WithCopies 测试带副本的详情查询
func TestBookDetail_WithCopies(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestLibrarian(t, "detail_admin")
	bookID := AddTestBook(t, token, "《Go语言圣经》", "Alan A. A. Donovan")
	AddTestInstance(t, token, bookID, "First Edition, 2015")
	AddTestInstance(t, token, bookID, "Second Edition, 2020")

	status, body := GetRaw(t, BaseURL+"/books/"+bookID)

	require.Equal(t, http.StatusOK, status)

	var detail BookDetailData
	require.NoError(t, json.Unmarshal(body, &detail), "解析详情响应失败: %s", string(body))

	assert.Equal(t, "《Go语言圣经》", detail.Title)
	assert.Equal(t, "Alan A. A. Donovan", detail.Author)
	require.Len(t, detail.Copies, 2, "应有2个副本")

	// 新入库副本均为在架状态
	for _, c := range detail.Copies {
		assert.Equal(t, "Available", c.Status)
	}
}

// TestBookDetail_NoCopies 测试无副本图书的详情查询
// copies应为空数组而非null
func TestBookDetail_NoCopies(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestLibrarian(t, "detail_empty")
	bookID := AddTestBook(t, token, "《无副本测试图书》", "测试作者")

	status, body := GetRaw(t, BaseURL+"/books/"+bookID)

	require.Equal(t, http.StatusOK, status)

	// 原始JSON中copies必须是[]而非null
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.JSONEq(t, "[]", string(raw["copies"]), "copies应为空数组")
}

// TestBookDetail_NotFound 测试图书不存在的纯文本404
func TestBookDetail_NotFound(t *testing.T) {
	RequireServer(t)

	id := "00000000-0000-0000-0000-000000000000"
	status, body := GetRaw(t, BaseURL+"/books/"+id)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, fmt.Sprintf("Book %s not found", id), string(body))
}

// TestBookDetail_StatusFlow 测试副本状态流转后详情同步变化
func TestBookDetail_StatusFlow(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestLibrarian(t, "detail_flow")
	bookID := AddTestBook(t, token, "《状态流转测试》", "测试作者")
	instID := AddTestInstance(t, token, bookID, "First Edition")

	// 借出副本
	loanResp := PutJSON(t, BaseURL+"/instances/"+instID+"/status", map[string]string{
		"action":   "loan",
		"due_back": "2099-12-31",
	}, token)
	require.Equal(t, 0, loanResp.Code, "借出失败: %s", loanResp.Message)

	// 详情中的副本状态应已变为借出
	status, body := GetRaw(t, BaseURL+"/books/"+bookID)
	require.Equal(t, http.StatusOK, status)

	var detail BookDetailData
	require.NoError(t, json.Unmarshal(body, &detail))
	require.Len(t, detail.Copies, 1)
	assert.Equal(t, "On loan", detail.Copies[0].Status)
}
