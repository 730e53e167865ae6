package main

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRegistersRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "route-table-test-secret")
	gin.SetMode(gin.TestMode)

	isTest = true
	defer func() { isTest = false }()

	var captured *gin.Engine
	startServer = func(r *gin.Engine, addr string) error {
		captured = r
		return nil
	}

	run()
	require.NotNil(t, captured)

	type route struct{ method, path string }
	want := []route{
		{"POST", "/auth/signup"},
		{"POST", "/auth/login"},
		{"POST", "/auth/logout"},
		{"PATCH", "/auth/update-password"},
		{"POST", "/auth/forgot-password"},
		{"POST", "/auth/reset-password/:token"},
		{"GET", "/auth/user"},
		{"GET", "/api/doctors"},
		{"GET", "/api/doctors/:id"},
		{"PUT", "/api/doctors/:id/availability"},
		{"POST", "/api/doctors/:id/reviews"},
		{"POST", "/api/doctors"},
		{"PUT", "/api/doctors/:id"},
		{"DELETE", "/api/doctors/:id"},
		{"POST", "/api/appointments"},
		{"GET", "/api/appointments"},
		{"PUT", "/api/appointments/:id/status"},
		{"GET", "/api/medical-records"},
		{"POST", "/api/medical-records"},
		{"GET", "/api/medical-records/:id/prescriptions"},
		{"POST", "/api/medical-records/:id/prescriptions"},
		{"PUT", "/api/prescriptions/:id"},
		{"GET", "/api/timeslots/:doctorId"},
		{"POST", "/api/timeslots"},
		{"DELETE", "/api/timeslots/:id"},
		{"GET", "/api/patient/profile"},
		{"PATCH", "/api/patient/profile"},
		{"GET", "/api/wellness"},
		{"PATCH", "/api/wellness"},
	}

	registered := make(map[route]bool)
	for _, info := range captured.Routes() {
		registered[route{info.Method, info.Path}] = true
	}
	for _, w := range want {
		assert.True(t, registered[w], "missing route %s %s", w.method, w.path)
	}
}
