package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/cmerin0/PlayersSimpleApp/internal/api/apierr"
)

// pathID parses the {id} path variable as a positive integer
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.NewInvalidRequestError("invalid id")
	}
	return id, nil
}
