package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/xuri/excelize/v2"

	"github.com/tfgkk/schoolcomp/internal/api/models"
	"github.com/tfgkk/schoolcomp/internal/database"
	"github.com/tfgkk/schoolcomp/internal/spreadsheet"
)

func (s *HandlerTestSuite) TestListUsersOmitsPasswords() {
	s.createUser(&database.User{Username: "alice", Password: "secret", Role: "admin"})
	s.createUser(&database.User{Username: "bob", Password: "hunter2", Role: "student"})

	w := s.do(http.MethodGet, "/api/users")
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "secret")
	s.NotContains(w.Body.String(), "hunter2")

	var users []models.User
	s.decode(w, &users)
	s.Len(users, 2)
}

func (s *HandlerTestSuite) TestDeleteUser() {
	user := database.User{Username: "bob", Password: "pw"}
	s.createUser(&user)

	w := s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID))
	s.Require().Equal(http.StatusOK, w.Code)

	missing := s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", user.ID))
	s.Equal(http.StatusNotFound, missing.Code)
}

func (s *HandlerTestSuite) TestUpdateProfile() {
	user := database.User{Username: "bob", Password: "pw", Name: "Bob", Phone: "111"}
	s.createUser(&user)

	w := s.doJSON(http.MethodPut, "/api/users/profile", map[string]any{
		"id":    user.ID,
		"name":  "Robert",
		"phone": "13800000000",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	stored, err := s.db.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("Robert", stored.Name)
	s.Equal("13800000000", stored.Phone)
	// Credentials are untouched.
	s.Equal("bob", stored.Username)
	s.Equal("pw", stored.Password)
}

func (s *HandlerTestSuite) TestUpdateProfileNotFound() {
	w := s.doJSON(http.MethodPut, "/api/users/profile", map[string]any{
		"id":   999,
		"name": "Nobody",
	})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestUpdatePassword() {
	user := database.User{Username: "bob", Password: "right"}
	s.createUser(&user)

	w := s.doJSON(http.MethodPut, "/api/users/password", map[string]any{
		"id":          user.ID,
		"oldPassword": "right",
		"newPassword": "better",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	stored, err := s.db.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("better", stored.Password)
}

func (s *HandlerTestSuite) TestUpdatePasswordWrongOldPassword() {
	user := database.User{Username: "bob", Password: "right"}
	s.createUser(&user)

	w := s.doJSON(http.MethodPut, "/api/users/password", map[string]any{
		"id":          user.ID,
		"oldPassword": "wrong",
		"newPassword": "x",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "old password is incorrect")

	stored, err := s.db.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("right", stored.Password)
}

func (s *HandlerTestSuite) TestUpdatePasswordRequiresID() {
	w := s.doJSON(http.MethodPut, "/api/users/password", map[string]any{
		"oldPassword": "a",
		"newPassword": "b",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "user id is required")
}

func (s *HandlerTestSuite) TestUpdateStudentAccount() {
	user := database.User{Username: "13800000000", Password: "13800000000", Role: "student"}
	s.createUser(&user)

	w := s.doJSON(http.MethodPut, "/api/users/student/update", map[string]any{
		"id":       user.ID,
		"username": "bob2026",
		"password": "secret",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	stored, err := s.db.GetUserByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("bob2026", stored.Username)
	s.Equal("secret", stored.Password)
}

func (s *HandlerTestSuite) TestUpdateStudentAccountUsernameTaken() {
	s.createUser(&database.User{Username: "alice", Password: "pw"})
	user := database.User{Username: "bob", Password: "pw"}
	s.createUser(&user)

	w := s.doJSON(http.MethodPut, "/api/users/student/update", map[string]any{
		"id":       user.ID,
		"username": "alice",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "username already taken")
}

func (s *HandlerTestSuite) TestUpdateStudentAccountKeepOwnUsername() {
	user := database.User{Username: "bob", Password: "pw"}
	s.createUser(&user)

	// Re-submitting the current username is not a conflict.
	w := s.doJSON(http.MethodPut, "/api/users/student/update", map[string]any{
		"id":       user.ID,
		"username": "bob",
		"password": "new",
	})
	s.Equal(http.StatusOK, w.Code)
}

// buildImportSheet creates an xlsx upload body with the given name/phone rows.
func (s *HandlerTestSuite) buildImportSheet(rows [][]string) (*bytes.Buffer, string) {
	f := excelize.NewFile()
	defer f.Close() //nolint: errcheck
	sheet := f.GetSheetName(0)
	s.Require().NoError(f.SetSheetRow(sheet, "A1", &[]any{"Name", "Phone"}))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		s.Require().NoError(f.SetSheetRow(sheet, cell, &[]any{row[0], row[1]}))
	}
	content, err := f.WriteToBuffer()
	s.Require().NoError(err)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "students.xlsx")
	s.Require().NoError(err)
	_, err = part.Write(content.Bytes())
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	return &body, writer.FormDataContentType()
}

func (s *HandlerTestSuite) TestImportUsers() {
	// "alice" already exists under her phone number.
	s.createUser(&database.User{Username: "13900000000", Password: "13900000000", Role: "student", Name: "Alice"})

	body, contentType := s.buildImportSheet([][]string{
		{"Bob", "13800000000"},
		{"No Phone", ""},
		{"Alice", "13900000000"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code)

	users, err := s.db.GetAllUsers(s.ctx)
	s.Require().NoError(err)
	// Only Bob was created: blank phone and existing account are skipped.
	s.Require().Len(users, 2)

	bob, err := s.db.GetUserByUsername(s.ctx, "13800000000")
	s.Require().NoError(err)
	s.Require().NotNil(bob)
	s.Equal("Bob", bob.Name)
	s.Equal("13800000000", bob.Password)
	s.Equal("student", bob.Role)
}

func (s *HandlerTestSuite) TestImportUsersMissingFile() {
	w := s.do(http.MethodPost, "/api/users/import")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestDownloadTemplate() {
	w := s.do(http.MethodGet, "/api/users/template")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(spreadsheet.ContentType, w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), "attachment")

	// The template is a valid sheet with a header and no data rows.
	rows, err := spreadsheet.ParseRows(bytes.NewReader(w.Body.Bytes()))
	s.Require().NoError(err)
	s.Empty(rows)
}
