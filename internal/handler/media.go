package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"yatube/internal/form"
	"yatube/internal/model"
	"yatube/internal/service"
)

// maxPostFormSize leaves room for the text fields next to the largest image.
const maxPostFormSize = model.MaxPostImageSizeBytes + 1<<20

// parsePostForm reads the create/edit form, urlencoded or multipart.
// A non-nil form.Errors means the body itself was rejected.
// The caller closes the returned image file.
func parsePostForm(w http.ResponseWriter, r *http.Request) (model.PostForm, *service.ImageFile, form.Errors) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPostFormSize)

	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxPostFormSize)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.PostForm{}, nil, form.Errors{"image": "Image exceeds the 5MB limit."}
		}
		return model.PostForm{}, nil, form.Errors{"__all__": "The form could not be read."}
	}

	f := model.PostForm{
		Text:    r.PostFormValue("text"),
		GroupID: groupChoice(r.PostFormValue("group")),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		// http.ErrMissingFile: no image attached
		return f, nil, nil
	}
	return f, &service.ImageFile{File: file, Header: header}, nil
}

// groupChoice maps the select value to a group id. Anything that is not a
// positive id becomes 0, which never exists and is reported as an invalid
// choice by the post service.
func groupChoice(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		id = 0
	}
	return &id
}
