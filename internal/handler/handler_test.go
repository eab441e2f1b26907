package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pustakalaya/intake-service/internal/errs"
	"github.com/pustakalaya/intake-service/internal/handler"
	"github.com/pustakalaya/intake-service/internal/model"

	service_mocks "github.com/pustakalaya/intake-service/internal/handler/mocks"
)

func TestHandler_AddBooks(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockIntakeService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), model.AddBooksRequest{
						LibrarianID: 1,
						IsNewUser:   true,
						UserData:    model.UserData{Name: "A", Mobile: "9999999999"},
						Books:       []model.BookItem{{Title: "T", Author: "Au", Genre: "G", ISBN: "111", Count: 2}},
					}).
					Return(model.AddBooksResponse{
						UserID:           7,
						BookIDs:          []int{42},
						TotalBooks:       1,
						CertificateSaved: false,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"books added successfully","data":{"user_id":7,"book_ids":[42],"total_books":1,"certificate_saved":false}}`,
			},
		},
		{
			name:         "err. empty books",
			body:         `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name:         "err. book count not numeric",
			body:         `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":"x"}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"invalid request body"}`,
			},
		},
		{
			name:         "err. book count zero",
			body:         `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":0}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
		{
			name: "err. invalid mobile",
			body: `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"99999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), gomock.Any()).
					Return(model.AddBooksResponse{}, errs.NewValidationError("invalid mobile number format"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"invalid mobile number format"}`,
			},
		},
		{
			name: "err. duplicate mobile",
			body: `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), gomock.Any()).
					Return(model.AddBooksResponse{}, errs.ErrDuplicateMobile)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"donor with this mobile number already exists"}`,
			},
		},
		{
			name: "err. duplicate isbn",
			body: `{"librarian_id":1,"is_new_user":true,"user_data":{"name":"A","mobile":"9999999999"},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), gomock.Any()).
					Return(model.AddBooksResponse{}, errors.Wrap(errs.ErrDuplicateISBN, "isbn 111"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"isbn 111: book with this isbn already exists"}`,
			},
		},
		{
			name: "err. librarian not found",
			body: `{"librarian_id":99,"is_new_user":false,"user_data":{"u_id":3},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), gomock.Any()).
					Return(model.AddBooksResponse{}, errs.ErrLibrarianNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"message":"librarian not found"}`,
			},
		},
		{
			name: "err. internal",
			body: `{"librarian_id":1,"is_new_user":false,"user_data":{"u_id":3},"books":[{"title":"T","author":"Au","genre":"G","isbn":"111","count":2}]}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					AddBooks(context.Background(), gomock.Any()).
					Return(model.AddBooksResponse{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"success":false,"message":"internal server error"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockIntakeService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/add_books", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_AddBooks_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockIntakeService(c)
	h := handler.New(svc, zap.NewExample().Named("test"))
	e := h.NewRouter()

	r := httptest.NewRequest(http.MethodGet, "/add_books", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, `{"success":false,"message":"Method Not Allowed"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_Login(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockIntakeService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"email":"lib@pustakalaya.org","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					Login(context.Background(), model.LoginRequest{Email: "lib@pustakalaya.org", Password: "secret"}).
					Return(model.LoginResponse{
						User: model.Librarian{
							ID:     1,
							Name:   "Asha",
							Email:  "lib@pustakalaya.org",
							Mobile: "9999999999",
							Role:   "librarian",
						},
						Token: "tok",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"login successful","data":{"user":{"id":1,"name":"Asha","email":"lib@pustakalaya.org","mobile":"9999999999","role":"librarian","updated_at":"0001-01-01T00:00:00Z"},"token":"tok"}}`,
			},
		},
		{
			name: "ok with padded email",
			body: `{"email":" lib@pustakalaya.org ","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					Login(context.Background(), model.LoginRequest{Email: "lib@pustakalaya.org", Password: "secret"}).
					Return(model.LoginResponse{
						User: model.Librarian{
							ID:     1,
							Name:   "Asha",
							Email:  "lib@pustakalaya.org",
							Mobile: "9999999999",
							Role:   "librarian",
						},
						Token: "tok",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"login successful","data":{"user":{"id":1,"name":"Asha","email":"lib@pustakalaya.org","mobile":"9999999999","role":"librarian","updated_at":"0001-01-01T00:00:00Z"},"token":"tok"}}`,
			},
		},
		{
			name:         "err. invalid email format",
			body:         `{"email":"not-an-email","password":"secret"}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"invalid email format"}`,
			},
		},
		{
			name:         "err. missing password",
			body:         `{"email":"lib@pustakalaya.org","password":""}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"email and password are required"}`,
			},
		},
		{
			name: "err. invalid credentials",
			body: `{"email":"lib@pustakalaya.org","password":"wrong"}`,
			mockBehavior: func(r *service_mocks.MockIntakeService) {
				r.EXPECT().
					Login(context.Background(), gomock.Any()).
					Return(model.LoginResponse{}, errs.ErrInvalidCredentials)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"invalid credentials"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockIntakeService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_SearchUser(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockIntakeService, mobile string)

	var tests = []struct {
		name         string
		mobile       string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:   "ok",
			mobile: "9999999999",
			mockBehavior: func(r *service_mocks.MockIntakeService, mobile string) {
				r.EXPECT().
					SearchDonor(context.Background(), mobile).
					Return(model.Donor{
						ID:     3,
						Name:   "A",
						Mobile: "9999999999",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"success":true,"message":"user found","data":{"id":3,"name":"A","mobile":"9999999999","created_at":"0001-01-01T00:00:00Z"}}`,
			},
		},
		{
			name:   "err. invalid mobile",
			mobile: "12ab",
			mockBehavior: func(r *service_mocks.MockIntakeService, mobile string) {
				r.EXPECT().
					SearchDonor(context.Background(), mobile).
					Return(model.Donor{}, errs.NewValidationError("invalid mobile number format"))
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"success":false,"message":"invalid mobile number format"}`,
			},
		},
		{
			name:   "err. not found",
			mobile: "8888888888",
			mockBehavior: func(r *service_mocks.MockIntakeService, mobile string) {
				r.EXPECT().
					SearchDonor(context.Background(), mobile).
					Return(model.Donor{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"success":false,"message":"user not found with this mobile number"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockIntakeService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodGet, "/search_user?mobile="+tt.mobile, http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.mobile)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}
