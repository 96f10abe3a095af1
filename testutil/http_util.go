package testutil

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"testing"
)

func Unmarshal(res *http.Response, v interface{}, t *testing.T) {
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	err = json.Unmarshal(body, v)
	if err != nil {
		t.Fatal(err)
	}
}

func Get(url string, t *testing.T) *http.Response {
	res, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func Put(url string, request interface{}, t *testing.T) *http.Response {
	return SendRequest(http.MethodPut, url, request, t)
}

func Post(url string, request interface{}, t *testing.T) *http.Response {
	return SendRequest(http.MethodPost, url, request, t)
}

func Delete(url string, t *testing.T) *http.Response {
	return SendRequest(http.MethodDelete, url, nil, t)
}

func SendRequest(method, url string, request interface{}, t *testing.T) *http.Response {
	var body *bytes.Buffer
	if request != nil {
		json, err := json.Marshal(request)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewBuffer(json)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}

	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return res
}
