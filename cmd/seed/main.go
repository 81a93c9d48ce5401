package main

import (
	"context"
	"os"
	"time"

	"impes-be/internal/config"
	"impes-be/internal/entity"
	"impes-be/internal/model"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/serverutils"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/service"
	"impes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedLevel struct {
	role   string
	name   string
	status string
}

var levels = []seedLevel{
	{role: "Site Engineer", name: "Engineer", status: ""},
	{role: "Finance Officer", name: "Finance", status: "Awaiting Finance Review"},
	{role: "Director", name: "Director", status: "Awaiting Director Review"},
}

var fixedStatuses = []model.PaymentStatus{
	{StatusName: "Submitted", Code: string(entity.StatusCodeSubmitted), Description: "Entered the approval chain"},
	{StatusName: "Approved for Payment", Code: string(entity.StatusCodeApprovedForPayment), Description: "Cleared every approval level"},
	{StatusName: "Rejected", Code: string(entity.StatusCodeRejected), Description: "Rejected by a reviewer"},
	{StatusName: "Returned for Correction", Code: string(entity.StatusCodeReturnedForCorrection), Description: "Waiting on the contractor"},
	{StatusName: "Paid", Code: string(entity.StatusCodePaid), Description: "Payment recorded"},
}

var reviewerPrivileges = []string{
	string(entity.PrivilegePaymentRequestRead),
	string(entity.PrivilegePaymentRequestReadAll),
	string(entity.PrivilegePaymentRequestUpdate),
}

var adminPrivileges = []string{
	string(entity.PrivilegePaymentRequestRead),
	string(entity.PrivilegePaymentRequestReadAll),
	string(entity.PrivilegePaymentRequestDelete),
	string(entity.PrivilegePaymentDetailsCreate),
	string(entity.PrivilegePaymentDetailsUpdate),
	string(entity.PrivilegeApprovalLevelCreate),
	string(entity.PrivilegeApprovalLevelRead),
	string(entity.PrivilegeApprovalLevelUpdate),
	string(entity.PrivilegeApprovalLevelDelete),
	string(entity.PrivilegePaymentStatusCreate),
	string(entity.PrivilegePaymentStatusRead),
	string(entity.PrivilegePaymentStatusUpdate),
	string(entity.PrivilegePaymentStatusDelete),
	string(entity.PrivilegeProjectAssignContractor),
}

var contractorPrivileges = []string{
	string(entity.PrivilegePaymentRequestCreate),
	string(entity.PrivilegePaymentRequestRead),
	string(entity.PrivilegePaymentRequestUpdate),
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{MaxIdleConns: 1, MaxOpenConns: 2}, false)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Seeding approval workflow...")
	if err := db.Transaction(func(tx *gorm.DB) error { return seedRegistry(tx) }); err != nil {
		color.Red("Error: seeding failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("\nCompiled workflow table")
	registry := service.NewWorkflowRegistry(unitofwork.NewRepositoryFactory(db), memory.NewWorkflowTableCache(time.Minute), nil, logger.NewNopLogger())
	table, err := registry.Recompile(context.Background())
	if err != nil {
		color.Red("Error: compile failed: %v", err)
		os.Exit(1)
	}
	for _, tr := range table.Transitions() {
		from := "?"
		if l, ok := table.Level(tr.FromLevelId); ok {
			from = l.LevelName
		}
		to := "-"
		if tr.NextLevelId != nil {
			if l, ok := table.Level(*tr.NextLevelId); ok {
				to = l.LevelName
			}
		}
		color.White("  %-10s %-24s -> %-26s level=%s", from, tr.Action, tr.NextStatusName, to)
	}
	if issues := table.Issues(); len(issues) > 0 {
		for _, i := range issues {
			color.Yellow("  [%s] %s", i.Code, i.Message)
		}
	} else {
		color.Green("  registry is healthy")
	}

	printTokens(db, cfg)
	color.Green("\nSeeding completed!")
}

func seedRegistry(tx *gorm.DB) error {
	for _, l := range levels {
		var role model.Role
		if err := tx.Where(model.Role{Name: l.role}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		color.White("Role: %s", role.Name)

		var level model.ApprovalLevel
		order := levelOrder(l.name)
		err := tx.Where("approval_order = ?", order).
			Attrs(model.ApprovalLevel{LevelName: l.name, RoleId: role.Id, ApprovalOrder: order}).
			FirstOrCreate(&level).Error
		if err != nil {
			return err
		}
		color.White("Level %d: %s", level.ApprovalOrder, level.LevelName)

		if l.status == "" {
			continue
		}
		levelId := level.Id
		status := model.PaymentStatus{
			StatusName:      l.status,
			Code:            string(entity.StatusCodeAwaitingReview),
			ApprovalLevelId: &levelId,
		}
		if err := tx.Where(model.PaymentStatus{StatusName: l.status}).Attrs(status).FirstOrCreate(&status).Error; err != nil {
			return err
		}
	}

	for _, s := range fixedStatuses {
		status := s
		if err := tx.Where(model.PaymentStatus{StatusName: s.StatusName}).Attrs(status).FirstOrCreate(&status).Error; err != nil {
			return err
		}
		color.White("Status: %s (%s)", status.StatusName, status.Code)
	}

	for _, r := range []string{"Administrator", "Contractor"} {
		var role model.Role
		if err := tx.Where(model.Role{Name: r}).FirstOrCreate(&role).Error; err != nil {
			return err
		}
		username := "admin"
		if r == "Contractor" {
			username = "contractor"
		}
		user := model.User{Username: username, FirstName: r, RoleId: role.Id}
		if err := tx.Where(model.User{Username: username}).Attrs(user).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	for i, l := range levels {
		var role model.Role
		if err := tx.Where(model.Role{Name: l.role}).First(&role).Error; err != nil {
			return err
		}
		username := "reviewer" + string(rune('1'+i))
		user := model.User{Username: username, FirstName: l.role, RoleId: role.Id}
		if err := tx.Where(model.User{Username: username}).Attrs(user).FirstOrCreate(&user).Error; err != nil {
			return err
		}
	}
	return nil
}

func levelOrder(name string) int {
	for i, l := range levels {
		if l.name == name {
			return i + 1
		}
	}
	return 0
}

// printTokens mints development tokens for the seeded users.
func printTokens(db *gorm.DB, cfg *config.Config) {
	if cfg.IsProduction() {
		return
	}
	verifier := serverutils.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	var users []struct {
		model.User
		RoleName string
	}
	if err := db.Table("users").
		Select("users.*, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = users.role_id").
		Scan(&users).Error; err != nil {
		color.Red("Warn: could not load users: %v", err)
		return
	}

	color.Cyan("\nDevelopment tokens (24h)")
	for _, u := range users {
		claims := serverutils.AuthClaims{
			Id:       u.Id,
			Username: u.Username,
			RoleId:   u.RoleId,
			RoleName: u.RoleName,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			},
		}
		switch u.RoleName {
		case "Administrator":
			claims.Privileges = adminPrivileges
		case "Contractor":
			claims.Privileges = contractorPrivileges
			contractorId := uuid.NewSHA1(uuid.NameSpaceOID, []byte(u.Id.String()))
			claims.ContractorId = &contractorId
		default:
			claims.Privileges = reviewerPrivileges
		}
		token, err := verifier.Sign(claims)
		if err != nil {
			color.Red("Warn: sign %s: %v", u.Username, err)
			continue
		}
		color.White("  %-12s %s", u.Username, token)
	}
}
