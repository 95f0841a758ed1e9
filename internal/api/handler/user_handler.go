package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nearcare/directory-api/internal/api/metrics"
	"github.com/nearcare/directory-api/internal/core/domain"
	"github.com/nearcare/directory-api/internal/core/ports"
)

// UserHandler handles the directory's listing and CRUD endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetNearby handles GET /api/user/getNearbyUsers — users ordered by ascending
// distance from the query point.
//
// @Summary      List users nearest a coordinate
// @Tags         users
// @Produce      json
// @Param        latitude     query     number  true   "Latitude of the query point"
// @Param        longitude    query     number  true   "Longitude of the query point"
// @Param        pageNumber   query     int     false  "Page (1-based, default 1)"
// @Param        perPageData  query     int     false  "Page size (default 10)"
// @Success      200  {object}  listUsersResponse
// @Failure      400  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/user/getNearbyUsers [get]
func (h *UserHandler) GetNearby(c echo.Context) error {
	latRaw := c.QueryParam("latitude")
	lngRaw := c.QueryParam("longitude")
	if latRaw == "" || lngRaw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Latitude and longitude are required.")
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Latitude and longitude are required.")
	}

	page, perPage := pageParams(c)

	result, err := h.users.ListNearest(c.Request().Context(), ports.NearestInput{
		Longitude: lng,
		Latitude:  lat,
		Page:      page,
		PerPage:   perPage,
	})
	if err != nil {
		return err
	}

	metrics.GeoQueriesTotal.Inc()
	return c.JSON(http.StatusOK, listUsersResponse(*result))
}

// GetAll handles GET /api/user/allUsers — users in store-native order.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Param        pageNumber   query     int  false  "Page (1-based, default 1)"
// @Param        perPageData  query     int  false  "Page size (default 10)"
// @Success      200  {object}  listUsersResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/user/allUsers [get]
func (h *UserHandler) GetAll(c echo.Context) error {
	page, perPage := pageParams(c)

	result, err := h.users.ListAll(c.Request().Context(), ports.ListInput{
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse(*result))
}

// GetByID handles GET /api/user/userDataById — the full record minus the
// password hash.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Param        id   query     string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/user/userDataById [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), c.QueryParam("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/user/userById — merges the supplied fields into the
// record and returns the updated state.
//
// @Summary      Update a user by id
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    query     string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to merge"
// @Success      200   {object}  domain.User
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/user/userById [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}

	user, err := h.users.UpdateByID(c.Request().Context(), c.QueryParam("id"), ports.UpdateInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
		Longitude:   req.Longitude,
		Latitude:    req.Latitude,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/user/userById. A second delete of the same id
// reports not-found.
//
// @Summary      Delete a user by id
// @Tags         users
// @Produce      json
// @Param        id   query     string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /api/user/userById [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.DeleteByID(c.Request().Context(), c.QueryParam("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted"})
}

// Create handles POST /api/user/createUser — the administrative create path.
// The password and location are fixed defaults; the role must be one of the
// enumerated values.
//
// @Summary      Create a user with a given role
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/user/createUser [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.users.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Title:       req.Title,
		Description: req.Description,
		Role:        req.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRole) || errors.Is(err, domain.ErrMissingFields) {
			return err
		}
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: fmt.Sprintf("Error registering %s", req.Role),
		})
	}

	metrics.RegistrationsTotal.WithLabelValues(req.Role).Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: fmt.Sprintf("%s registered successfully", req.Role),
	})
}

// pageParams reads pageNumber/perPageData, falling back to the defaults on
// absent or unparseable values.
func pageParams(c echo.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.QueryParam("pageNumber"))
	perPage, _ = strconv.Atoi(c.QueryParam("perPageData"))
	return page, perPage
}
