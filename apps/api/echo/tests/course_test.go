package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/tests"
)

func Test_courseApi_crud(t *testing.T) {
	app, svcs := setup(t)

	// create
	req, rec := newRequest(http.MethodPost, "/v1/courses", []byte(`{"name":"English A2","color":"#ff5733"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create code = %d; body %s", rec.Code, rec.Body.String())
	}
	var crs course.Course
	if err := json.Unmarshal(rec.Body.Bytes(), &crs); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if crs.ID == "" || crs.Name != "English A2" {
		t.Fatalf("unexpected course %+v", crs)
	}

	// invalid create
	req, rec = newRequest(http.MethodPost, "/v1/courses", []byte(`{"name":"  "}`))
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "POST", path: "/v1/courses", wantCode: http.StatusBadRequest, wantData: jsonMarshal(t, map[string]string{"name": "this field is required"})}, rec)

	// list
	req, rec = newRequest(http.MethodGet, "/v1/courses")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "GET", path: "/v1/courses", wantCode: http.StatusOK, wantData: jsonMarshal(t, []course.Course{crs})}, rec)

	// retrieve
	req, rec = newRequest(http.MethodGet, "/v1/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "GET", path: "/v1/courses/" + crs.ID, wantCode: http.StatusOK, wantData: jsonMarshal(t, crs)}, rec)

	req, rec = newRequest(http.MethodGet, "/v1/courses/course_nope")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "GET", path: "/v1/courses/course_nope", wantCode: http.StatusNotFound, wantData: jsonMarshal(t, httpErr{Error: "course not found"})}, rec)

	// update
	req, rec = newRequest(http.MethodPut, "/v1/courses/"+crs.ID, []byte(`{"name":"English B1"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update code = %d; body %s", rec.Code, rec.Body.String())
	}
	updated, err := svcs.Course.Get(crs.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if updated.Name != "English B1" || updated.Color != "#ff5733" {
		t.Errorf("unexpected course after update %+v", updated)
	}

	// destroy reports cascade counts
	req, rec = newRequest(http.MethodDelete, "/v1/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "DELETE", path: "/v1/courses/" + crs.ID, wantCode: http.StatusOK, wantData: jsonMarshal(t, course.CascadeResult{})}, rec)

	req, rec = newRequest(http.MethodDelete, "/v1/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "DELETE", path: "/v1/courses/" + crs.ID, wantCode: http.StatusNotFound}, rec)
}

func Test_courseApi_destroyCascades(t *testing.T) {
	app, svcs := setup(t)

	crs := testutil.CreateCourse(t, svcs.Course, "English A2", "")
	testutil.CreateClass(t, svcs.Class, "2026-02-03", crs.ID)
	testutil.CreateClass(t, svcs.Class, "2026-02-04", crs.ID)

	req, rec := newRequest(http.MethodDelete, "/v1/courses/"+crs.ID)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{method: "DELETE", path: "/v1/courses/" + crs.ID, wantCode: http.StatusOK, wantData: jsonMarshal(t, course.CascadeResult{ClassesDeleted: 2})}, rec)

	classes, err := svcs.Class.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(classes) != 0 {
		t.Errorf("want no classes left, got %d", len(classes))
	}
}
