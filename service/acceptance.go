package service

import (
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	json "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

type JSON = map[string]interface{}

// decodeLines parses a body made of JSON values separated by new lines.
func decodeLines(body string) []interface{} {
	result := []interface{}{}
	dec := jsontext.NewDecoder(strings.NewReader(body))
	for {
		var item interface{}
		err := json.UnmarshalDecode(dec, &item)
		if err != nil {
			return result
		}
		result = append(result, item)
	}
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Insert one", func(a *biff.A) {
		myDocument := JSON{
			"id":      "my-id",
			"name":    "Fulanez",
			"address": "Elm Street 11",
		}
		resp := apiRequest("POST", "/tables/people:insert").
			WithBodyJson(myDocument).Do()
		Save(resp, "Insert one", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), myDocument)

		a.Alternative("Find", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{}).Do()
			Save(resp, "Find", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), myDocument)
		})

		a.Alternative("Size", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:size").Do()
			Save(resp, "Size", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"size": 1})
		})

		a.Alternative("Status", func(a *biff.A) {
			resp := apiRequest("GET", "/status").Do()
			Save(resp, "Status", `
				Version is the one the server attachment is reading, latest is the last
				committed one.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			body := resp.BodyJson().(JSON)
			biff.AssertEqual(body["version"], float64(2))
			biff.AssertEqual(body["latest"], float64(2))
			biff.AssertEqual(body["commits"], float64(1))
			biff.AssertEqualJson(body["tables"], []JSON{
				{"name": "people", "size": 1},
			})
		})

		a.Alternative("Insert twice", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:insert").
				WithBodyJson(myDocument).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			resp = apiRequest("POST", "/tables/people:size").Do()
			biff.AssertEqualJson(resp.BodyJson(), JSON{"size": 2})
		})
	})

	a.Alternative("Insert many", func(a *biff.A) {

		myDocuments := []JSON{
			{"id": "1", "name": "Alfonso", "n": 3},
			{"id": "2", "name": "Gerardo", "n": 1},
			{"id": "3", "name": "Alfonso", "n": 2},
		}

		body := ""
		for _, myDocument := range myDocuments {
			b, _ := json.Marshal(myDocument)
			body += string(b) + "\n"
		}
		resp := apiRequest("POST", "/tables/people:insert").
			WithBodyString(body).Do()
		Save(resp, "Insert many", `
			Documents are sent one per line and committed in a single write transaction.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(decodeLines(resp.BodyString()), myDocuments)

		a.Alternative("Find sorted", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"sort": []string{"n"},
				}).Do()
			Save(resp, "Find - sorted", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[1],
				myDocuments[2],
				myDocuments[0],
			})
		})

		a.Alternative("Find sorted descending", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"sort": []string{"-n"},
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[0],
				myDocuments[2],
				myDocuments[1],
			})
		})

		a.Alternative("Find reverse", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"sort":    []string{"n"},
					"reverse": true,
				}).Do()
			Save(resp, "Find - reverse", `
				Walks the sorted results backwards, starting from the end.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[0],
				myDocuments[2],
				myDocuments[1],
			})
		})

		a.Alternative("Find with skip and limit", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"sort":  []string{"n"},
					"skip":  1,
					"limit": 1,
				}).Do()
			Save(resp, "Find - skip and limit", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[2],
			})
		})

		a.Alternative("Find reverse with skip", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"sort":    []string{"n"},
					"skip":    1,
					"reverse": true,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[2],
				myDocuments[1],
			})
		})

		a.Alternative("Find with filter", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"filter": JSON{
						"name": "Alfonso",
					},
				}).Do()
			Save(resp, "Find - filter", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[0],
				myDocuments[2],
			})
		})

		a.Alternative("Find skip beyond size", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"skip": 10,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyString(), "")
		})

		a.Alternative("Find negative skip", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{
					"skip": -1,
				}).Do()
			Save(resp, "Find - out of range", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Remove with filter", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:remove").
				WithBodyJson(JSON{
					"filter": JSON{
						"name": "Alfonso",
					},
				}).Do()
			Save(resp, "Remove - filter", `
				Responds with the removed documents.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[0],
				myDocuments[2],
			})

			resp = apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{}).Do()
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[1],
			})
		})

		a.Alternative("Remove reverse with limit", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:remove").
				WithBodyJson(JSON{
					"sort":    []string{"n"},
					"reverse": true,
					"limit":   1,
				}).Do()
			Save(resp, "Remove - reverse with limit", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[0],
			})

			resp = apiRequest("POST", "/tables/people:find").
				WithBodyJson(JSON{"sort": []string{"n"}}).Do()
			biff.AssertEqualJson(decodeLines(resp.BodyString()), []JSON{
				myDocuments[1],
				myDocuments[2],
			})
		})

		a.Alternative("Remove all", func(a *biff.A) {
			resp := apiRequest("POST", "/tables/people:remove").
				Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(len(decodeLines(resp.BodyString())), 3)

			resp = apiRequest("POST", "/tables/people:size").Do()
			biff.AssertEqualJson(resp.BodyJson(), JSON{"size": 0})
		})

	})

	a.Alternative("Find with table not found", func(a *biff.A) {

		resp := apiRequest("POST", "/tables/nobody:find").
			WithBodyJson(JSON{}).Do()
		Save(resp, "Find - table not found", ``)

		errorMessage := resp.BodyJson().(JSON)["error"].(JSON)["message"].(string)
		biff.AssertEqual(errorMessage, "table not found")
		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
	})

	a.Alternative("Insert not a document", func(a *biff.A) {

		resp := apiRequest("POST", "/tables/people:insert").
			WithBodyString(`[1, 2, 3]`).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Insert malformed JSON", func(a *biff.A) {

		resp := apiRequest("POST", "/tables/people:insert").
			WithBodyString(`{"name": `).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

		resp = apiRequest("POST", "/tables/people:size").Do()
		biff.AssertEqualJson(resp.BodyJson(), JSON{"size": 0})
	})

	a.Alternative("Insert nothing", func(a *biff.A) {

		resp := apiRequest("POST", "/tables/people:insert").
			WithBodyString(``).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
	})

}
