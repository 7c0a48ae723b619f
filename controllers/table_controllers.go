package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/periodictables/restaurant-reservations/models"
	"github.com/periodictables/restaurant-reservations/services"
	"github.com/periodictables/restaurant-reservations/utils"
	"github.com/periodictables/restaurant-reservations/validators"
)

type TableController struct {
	service      *services.TableService
	reservations *services.ReservationService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		service:      services.NewTableService(db),
		reservations: services.NewReservationService(db),
	}
}

// GetAllTables -> GET /tables, ordered by table_name.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.service.List()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, tables)
}

// CreateTable -> POST /tables
func (tc *TableController) CreateTable(c *gin.Context) {
	data, ok := bindTableData(c)
	if !ok {
		return
	}

	if v := validators.CreateTable(data); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}

	table, err := tc.service.Create(data.ToTable())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d created: %s (capacity %d)", table.ID, table.TableName, table.Capacity)
	utils.RespondData(c, http.StatusCreated, table)
}

// GetTableByID -> GET /tables/:table_id
func (tc *TableController) GetTableByID(c *gin.Context) {
	table, ok := tc.lookup(c)
	if !ok {
		return
	}
	utils.RespondData(c, http.StatusOK, table)
}

// SeatTable -> PUT /tables/:table_id/seat, body {"data":{"reservation_id": N}}.
// The table/reservation pair is updated in one transaction by the service.
func (tc *TableController) SeatTable(c *gin.Context) {
	data, ok := bindTableData(c)
	if !ok {
		return
	}

	if v := validators.SeatRequest(data); v != nil {
		utils.RespondError(c, v.Status, v)
		return
	}
	reservationID, _ := data.ReservationID()

	table, ok := tc.lookup(c)
	if !ok {
		return
	}
	if _, err := tc.reservations.Read(reservationID); err != nil {
		utils.RespondError(c, http.StatusNotFound,
			notFoundErr("reservation_id", strconv.FormatUint(uint64(reservationID), 10)))
		return
	}

	seated, err := tc.service.Seat(table.ID, reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d seated with reservation %d", seated.ID, reservationID)
	utils.RespondData(c, http.StatusOK, seated)
}

// FinishTable -> DELETE /tables/:table_id/seat. Frees the table and marks
// its reservation finished.
func (tc *TableController) FinishTable(c *gin.Context) {
	table, ok := tc.lookup(c)
	if !ok {
		return
	}

	finished, err := tc.service.Finish(table.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d finished and freed", finished.ID)
	utils.RespondData(c, http.StatusOK, finished)
}

func (tc *TableController) lookup(c *gin.Context) (*models.Table, bool) {
	idStr := c.Param("table_id")
	id, ok := parseID(idStr)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, notFoundErr("table_id", idStr))
		return nil, false
	}

	table, err := tc.service.Read(id)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, notFoundErr("table_id", idStr))
		return nil, false
	}
	return table, true
}

func bindTableData(c *gin.Context) (validators.TableData, bool) {
	var body struct {
		Data validators.TableData `json:"data"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false
	}
	if body.Data == nil {
		utils.RespondError(c, http.StatusBadRequest, errMissingData)
		return nil, false
	}
	return body.Data, true
}
