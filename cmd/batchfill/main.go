package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zhukovvlad/docfill-go/cmd/internal/docx"
	"github.com/zhukovvlad/docfill-go/cmd/internal/filler"
	"github.com/zhukovvlad/docfill-go/cmd/pkg/logging"
)

// batchfill заполняет все .docx шаблоны из каталога одним набором данных,
// без сервера и без базы. Каждый шаблон обрабатывается независимым
// экземпляром движка, поэтому шаблоны идут параллельно.
func main() {
	var (
		templatesDir = flag.String("templates", ".", "каталог с .docx шаблонами")
		dataPath     = flag.String("data", "data.json", "JSON с данными для заполнения")
		outDir       = flag.String("out", "filled", "каталог для заполненных документов")
		padDates     = flag.Bool("pad-dates", false, "дополнять месяц и день нулями в датах")
		workers      = flag.Int("workers", 4, "число параллельных воркеров")
	)
	flag.Parse()

	logger := logging.GetLogger()

	data, err := loadData(*dataPath)
	if err != nil {
		logger.Fatalf("не удалось загрузить данные: %v", err)
	}

	templates, err := filepath.Glob(filepath.Join(*templatesDir, "*.docx"))
	if err != nil {
		logger.Fatalf("не удалось прочитать каталог шаблонов: %v", err)
	}
	if len(templates) == 0 {
		logger.Fatalf("в каталоге %s нет .docx шаблонов", *templatesDir)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatalf("не удалось создать каталог %s: %v", *outDir, err)
	}

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	for _, path := range templates {
		g.Go(func() error {
			return fillOne(path, *outDir, data, *padDates, logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatalf("обработка завершилась с ошибкой: %v", err)
	}
	logger.Infof("обработано шаблонов: %d", len(templates))
}

func loadData(path string) (filler.DataRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}

	data := make(filler.DataRecord, len(fields))
	for k, v := range fields {
		data[filler.FieldKey(k)] = v
	}
	return data, nil
}

func fillOne(path, outDir string, data filler.DataRecord, padDates bool, logger *logging.Logger) error {
	template, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("чтение %s: %w", path, err)
	}

	pkg, err := docx.OpenBytes(template)
	if err != nil {
		return fmt.Errorf("открытие %s: %w", path, err)
	}

	engine := filler.NewEngine(filler.FillOptions{PadDates: padDates}, logger)
	stats := engine.FillDocument(pkg.Document, data)

	filled, err := pkg.Bytes()
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", path, err)
	}

	base := filepath.Base(path)
	outPath := filepath.Join(outDir, strings.TrimSuffix(base, ".docx")+"_filled.docx")
	if err := os.WriteFile(outPath, filled, 0o644); err != nil {
		return fmt.Errorf("запись %s: %w", outPath, err)
	}

	logger.Infof("%s: заполнено %d, пропущено %d, не заполнено %d",
		base, stats.TotalFilled, stats.SkippedCount, len(stats.UnfilledFields))
	return nil
}
