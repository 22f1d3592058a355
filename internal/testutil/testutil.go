// Package testutil provides shared fixtures for catalog-backed tests.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/devcase/internal/catalog"
	"github.com/starford/devcase/internal/index"
	"github.com/starford/devcase/internal/models"
)

// Dataset returns a small, fully consistent catalog fixture.
//
// Articles:
//
//	1 Acme Cloud (tokyo)      cloud-migration / infrastructure   interview    500 views
//	2 Kansai Systems (osaka)  erp / business-systems             process      900 views
//	3 Hakata Labs (fukuoka)   custom-system / system-development deliverable  300 views
//	4 Acme Cloud (tokyo)      crm / business-systems             survey       900 views
//	5 Yokohama Works (kanagawa) cloud-migration / infrastructure process      120 views
//	6 Kansai Systems (osaka)  custom-system / system-development interview    650 views
func Dataset() catalog.Dataset {
	return catalog.Dataset{
		Areas: []models.Area{
			{Code: "2", Name: "関東", Slug: "kanto"},
			{Code: "4", Name: "近畿", Slug: "kinki"},
			{Code: "7", Name: "九州・沖縄", Slug: "kyushu"},
		},
		Prefectures: []models.Prefecture{
			{Code: "13", Name: "東京都", Slug: "tokyo", AreaCode: "2"},
			{Code: "14", Name: "神奈川県", Slug: "kanagawa", AreaCode: "2"},
			{Code: "27", Name: "大阪府", Slug: "osaka", AreaCode: "4"},
			{Code: "40", Name: "福岡県", Slug: "fukuoka", AreaCode: "7"},
		},
		Categories: []models.Category{
			{ID: "1", Name: "システム開発", Slug: "system-development"},
			{ID: "2", Name: "インフラ", Slug: "infrastructure"},
			{ID: "3", Name: "業務システム", Slug: "business-systems"},
		},
		Systems: []models.SystemName{
			{ID: "10", Name: "受託システム", Slug: "custom-system", CategoryID: "1"},
			{ID: "20", Name: "クラウド移行", Slug: "cloud-migration", CategoryID: "2"},
			{ID: "30", Name: "ERP", Slug: "erp", CategoryID: "3"},
			{ID: "31", Name: "CRM", Slug: "crm", CategoryID: "3"},
		},
		Purposes: []models.Purpose{
			{ID: "1", Name: "業務効率化", Slug: "efficiency"},
			{ID: "2", Name: "売上向上", Slug: "sales"},
		},
		ArticleTypes: []models.ArticleType{
			{ID: "01", Code: models.ArticleTypeProcess, Name: "開発プロセス", Slug: "process"},
			{ID: "02", Code: models.ArticleTypeInterview, Name: "インタビュー", Slug: "interview"},
			{ID: "03", Code: models.ArticleTypeDeliverable, Name: "成果物", Slug: "deliverable"},
			{ID: "04", Code: models.ArticleTypeSurvey, Name: "調査", Slug: "survey"},
		},
		Companies: []models.Company{
			{ID: 10, Name: "Acme Cloud", PrefectureCode: "13", EmployeeRange: models.ScaleMedium},
			{ID: 11, Name: "Kansai Systems", PrefectureCode: "27", EmployeeRange: models.ScaleLarge},
			{ID: 12, Name: "Hakata Labs", PrefectureCode: "40", EmployeeRange: models.ScaleSmall},
			{ID: 13, Name: "Yokohama Works", PrefectureCode: "14", EmployeeRange: models.ScaleSmall},
		},
		Articles: []models.Article{
			{
				ID: 1, CompanyID: 10, SystemID: "20", PurposeID: "1",
				Title: "Cloud migration story", Description: "Moving a ledger to AWS.",
				Keywords: []string{"cloud", "aws"}, PublishedAt: "2024-01-10",
				ViewCount: 500, PopularityScore: 7.5, ArticleType: models.ArticleTypeInterview,
				ProjectScale: models.ScaleLarge,
			},
			{
				ID: 2, CompanyID: 11, SystemID: "30", PurposeID: "1",
				Title: "ERP rollout", Description: "Replacing spreadsheets with SAP.",
				Keywords: []string{"erp", "sap"}, PublishedAt: "2024-03-01",
				ViewCount: 900, PopularityScore: 6, ArticleType: models.ArticleTypeProcess,
				ProjectScale: models.ScaleEnterprise,
			},
			{
				ID: 3, CompanyID: 12, SystemID: "10", PurposeID: "2",
				Title: "Inventory dashboard", Description: "A React dashboard for stock levels.",
				Keywords: []string{"dashboard", "react", "aws"}, PublishedAt: "2023-11-20",
				ViewCount: 300, PopularityScore: 8.2, ArticleType: models.ArticleTypeDeliverable,
				ProjectScale: models.ScaleSmall,
			},
			{
				ID: 4, CompanyID: 10, SystemID: "31", PurposeID: "2",
				Title: "CRM adoption survey", Description: "How sales teams use CRM.",
				Keywords: []string{"crm"}, PublishedAt: "2024-02-15",
				ViewCount: 900, PopularityScore: 5, ArticleType: models.ArticleTypeSurvey,
				ProjectScale: models.ScaleMedium,
			},
			{
				ID: 5, CompanyID: 13, SystemID: "20",
				Title: "Hybrid cloud network", Description: "Linking on-prem and cloud networks.",
				Keywords: []string{"cloud", "network"}, PublishedAt: "2024-03-01",
				ViewCount: 120, PopularityScore: 9.1, ArticleType: models.ArticleTypeProcess,
				ProjectScale: models.ScaleMedium,
			},
			{
				ID: 6, CompanyID: 11, SystemID: "10", PurposeID: "1",
				Title: "Factory line system interview", Description: "Talking to the plant manager.",
				Keywords: []string{"manufacturing"}, PublishedAt: "2023-08-05",
				ViewCount: 650, PopularityScore: 4.0, ArticleType: models.ArticleTypeInterview,
				ProjectScale: models.ScaleLarge,
			},
		},
	}
}

// DanglingDataset extends Dataset with two articles whose foreign keys do
// not resolve: 99 points at a missing company, 98 at a missing system.
func DanglingDataset() catalog.Dataset {
	ds := Dataset()
	ds.Articles = append(ds.Articles,
		models.Article{
			ID: 99, CompanyID: 999, SystemID: "10", Title: "Orphaned company",
			PublishedAt: "2024-04-01", ViewCount: 10, ArticleType: models.ArticleTypeProcess,
		},
		models.Article{
			ID: 98, CompanyID: 10, SystemID: "999", Title: "Orphaned system",
			PublishedAt: "2024-04-02", ViewCount: 20, ArticleType: models.ArticleTypeProcess,
		},
	)
	return ds
}

// TestCatalog builds the fixture catalog.
func TestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Build(Dataset(), catalog.Options{Strict: true, Version: "test"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// DanglingCatalog builds the fixture with unresolved references, leniently.
func DanglingCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Build(DanglingDataset(), catalog.Options{Version: "dangling"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "devcase-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
