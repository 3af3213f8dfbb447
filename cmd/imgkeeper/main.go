package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maynagashev/imgkeeper/internal/api"
	"github.com/maynagashev/imgkeeper/internal/tui"
)

const (
	logDir             = "logs"
	logFileName        = "imgkeeper.log"
	logFilePermissions = 0666
	lockFileName       = "imgkeeper.lock"
	// Имя переменной окружения для ключа Gemini API.
	apiKeyEnvVar = "GEMINI_API_KEY"
	// Модель генерации изображений по умолчанию.
	defaultModel = "gemini-2.5-flash-image-preview"
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
var (
	version = "dev" // Значение по умолчанию, если не установлено при сборке
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	buildDate = "unknown" // Значение по умолчанию
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	commitHash = "N/A" // Значение по умолчанию
)

// setupLogging настраивает логирование в файл logs/imgkeeper.log.
// В stdout писать нельзя: им владеет TUI.
func setupLogging() {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		// Используем panic, так как без логов продолжать нет смысла
		panic("Не удалось создать директорию для логов: " + err.Error())
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	// Файл остается открытым на все время работы приложения,
	// его закроет ОС при завершении процесса.

	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
}

func main() {
	versionFlag := flag.Bool("version", false, "Показать версию и дату сборки")

	setupLogging()

	apiKeyFlag := flag.String("api-key", "", "Ключ Gemini API (переопределяет "+apiKeyEnvVar+")")
	modelFlag := flag.String("model", defaultModel, "Модель генерации изображений")
	debugModeFlag := flag.Bool("debug", false, "Включить режим отладки TUI")

	flag.Parse()

	// Если указан флаг --version, выводим информацию и выходим
	if *versionFlag {
		// Используем стандартный log для вывода в консоль, так как slog настроен на файл
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("ImgKeeper")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		os.Exit(0)
	}

	// Определение финального ключа API: флаг важнее переменной окружения
	apiKey := os.Getenv(apiKeyEnvVar)
	source := "переменная окружения (" + apiKeyEnvVar + ")"
	if *apiKeyFlag != "" {
		apiKey = *apiKeyFlag
		source = "флаг -api-key"
	}
	if apiKey == "" {
		slog.Error("Ключ Gemini API не задан",
			"проверьте", "флаг -api-key и переменную окружения "+apiKeyEnvVar,
		)
		log.SetOutput(os.Stderr)
		log.SetFlags(0)
		log.Println("Не задан ключ Gemini API: установите " + apiKeyEnvVar + " или флаг -api-key")
		os.Exit(1)
	}

	slog.Info("Запуск ImgKeeper",
		"model", *modelFlag,
		"api_key_source", source,
		"debug_mode", *debugModeFlag,
	)

	apiClient, err := api.NewGeminiClient(context.Background(), apiKey, *modelFlag)
	if err != nil {
		slog.Error("Не удалось создать клиент Gemini API", "error", err)
		os.Exit(1)
	}

	lockPath := filepath.Join(os.TempDir(), lockFileName)
	tui.Start(apiClient, lockPath, *debugModeFlag)
}
