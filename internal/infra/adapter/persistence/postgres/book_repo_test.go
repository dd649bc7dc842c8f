package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"bookshelf/internal/domain/entity"
	pg "bookshelf/internal/infra/adapter/persistence/postgres"
	"bookshelf/internal/repository"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

func bookRow(b *entity.Book) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "author", "price", "created_at", "updated_at",
	}).AddRow(
		b.ID, b.Title, b.Author, b.Price, b.CreatedAt, b.UpdatedAt,
	)
}

/* ─────────────────────────── 1. Get ─────────────────────────── */

func TestBookRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := &entity.Book{
		ID: 1, Title: "The Go Programming Language",
		Author: "Alan A. A. Donovan", Price: 4180,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(bookRow(want))

	repo := pg.NewBookRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestBookRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "author", "price", "created_at", "updated_at",
		}))

	repo := pg.NewBookRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("Get want nil for missing row, got %+v", got)
	}
}

/* ─────────────────────────── 2. List ─────────────────────────── */

func TestBookRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM books").
		WillReturnRows(bookRow(&entity.Book{
			ID: 1, Title: "x", Author: "y", Price: 100,
			CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewBookRepo(db)
	got, err := repo.List(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
}

func TestBookRepo_ListPaginated(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("FROM books").
		WithArgs(10, 20).
		WillReturnRows(bookRow(&entity.Book{
			ID: 21, Title: "p", Author: "q", Price: 500,
			CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewBookRepo(db)
	got, err := repo.ListPaginated(context.Background(), 20, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("ListPaginated err=%v len=%d", err, len(got))
	}
}

func TestBookRepo_CountBooks(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM books")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	repo := pg.NewBookRepo(db)
	count, err := repo.CountBooks(context.Background())
	if err != nil || count != 42 {
		t.Fatalf("CountBooks err=%v count=%d", err, count)
	}
}

/* ─────────────────────────── 3. Search ─────────────────────────── */

func TestBookRepo_Search(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM books").
		WithArgs("%go%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "author", "price", "created_at", "updated_at",
		})) // 空集合で OK

	repo := pg.NewBookRepo(db)
	if _, err := repo.Search(context.Background(), "go"); err != nil {
		t.Fatalf("Search err=%v", err)
	}
}

func TestBookRepo_SearchWithFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	minPrice := int64(1000)
	mock.ExpectQuery("FROM books").
		WithArgs("%kafka%", minPrice).
		WillReturnRows(bookRow(&entity.Book{
			ID: 3, Title: "Kafka: The Definitive Guide", Author: "Gwen Shapira",
			Price: 4950, CreatedAt: now, UpdatedAt: now,
		}))

	repo := pg.NewBookRepo(db)
	got, err := repo.SearchWithFilters(context.Background(),
		[]string{"kafka"},
		repository.BookSearchFilters{MinPrice: &minPrice})
	if err != nil || len(got) != 1 {
		t.Fatalf("SearchWithFilters err=%v len=%d", err, len(got))
	}
}

func TestBookRepo_SearchWithFilters_NoCriteria(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// キーワードもフィルタも無い場合はクエリを発行しない
	repo := pg.NewBookRepo(db)
	got, err := repo.SearchWithFilters(context.Background(),
		nil, repository.BookSearchFilters{})
	if err != nil {
		t.Fatalf("SearchWithFilters err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("SearchWithFilters want empty, got %d", len(got))
	}
}

/* ─────────────────────────── 4. Create ─────────────────────────── */

func TestBookRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO books")).
		WithArgs("title", "author", int64(1200), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := pg.NewBookRepo(db)
	book := &entity.Book{
		Title: "title", Author: "author", Price: 1200,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), book); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if book.ID != 7 {
		t.Fatalf("Create want ID=7 filled in, got %d", book.ID)
	}
}

/* ─────────────────────────── 5. Update ─────────────────────────── */

func TestBookRepo_Update(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE books").
		WithArgs("new", "author", int64(990), now, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewBookRepo(db)
	err := repo.Update(context.Background(), &entity.Book{
		ID: 1, Title: "new", Author: "author", Price: 990, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
}

func TestBookRepo_Update_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()

	mock.ExpectExec("UPDATE books").
		WithArgs("new", "author", int64(990), now, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewBookRepo(db)
	err := repo.Update(context.Background(), &entity.Book{
		ID: 404, Title: "new", Author: "author", Price: 990, UpdatedAt: now,
	})
	if err == nil {
		t.Fatal("Update want error for missing row")
	}
}

/* ─────────────────────────── 6. Delete ─────────────────────────── */

func TestBookRepo_Delete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM books").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewBookRepo(db)
	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
}

func TestBookRepo_Delete_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DELETE FROM books").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewBookRepo(db)
	if err := repo.Delete(context.Background(), 404); err == nil {
		t.Fatal("Delete want error for missing row")
	}
}

/* ─────────────────────────── 7. ExistsByTitleAuthor ─────────────────────────── */

func TestBookRepo_ExistsByTitleAuthor(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// PostgreSQLはSELECT EXISTSを使用し、常に1行返す（trueまたはfalse）
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2)")).
		WithArgs("Clean Architecture", "Robert C. Martin").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := pg.NewBookRepo(db)
	ok, err := repo.ExistsByTitleAuthor(context.Background(), "Clean Architecture", "Robert C. Martin")
	if err != nil || !ok {
		t.Fatalf("ExistsByTitleAuthor err=%v ok=%v", err, ok)
	}
}

func TestBookRepo_ExistsByTitleAuthor_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2)")).
		WithArgs("missing", "nobody").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := pg.NewBookRepo(db)
	ok, err := repo.ExistsByTitleAuthor(context.Background(), "missing", "nobody")
	if err != nil {
		t.Fatalf("ExistsByTitleAuthor err=%v", err)
	}
	if ok {
		t.Fatalf("ExistsByTitleAuthor want false, got true")
	}
}
