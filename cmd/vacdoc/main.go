package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ivlev/vacdoc/internal/background"
	"github.com/ivlev/vacdoc/internal/config"
	"github.com/ivlev/vacdoc/internal/document"
	"github.com/ivlev/vacdoc/internal/frame"
	"github.com/ivlev/vacdoc/internal/geometry"
	"github.com/ivlev/vacdoc/internal/history"
	"github.com/ivlev/vacdoc/internal/logging"
	"github.com/ivlev/vacdoc/internal/source"
)

const usage = `vacdoc - фон документа VAC

Использование:
  vacdoc [флаги] infer <файл>...            вывести шаблон кадров по файлам изображений
  vacdoc [флаги] validate <текст>           проверить и нормализовать шаблон
  vacdoc [флаги] resolve [-pattern P] [-hold] <кадр>...
  vacdoc [флаги] preload [-from A] [-to B]  декодировать изображения фона
  vacdoc [флаги] keys                       ключевая геометрия документа
  vacdoc [флаги] set [правки] [<файл>...]   изменить фон и сохранить документ

Флаги:
`

func main() {
	configPtr := flag.String("config", "", "YAML-файл конфигурации")
	rootPtr := flag.String("root", "", "Корневая папка документов (перекрывает конфиг)")
	docPtr := flag.String("doc", "", "Файл документа относительно корня; \"latest\" - самый свежий .yaml")
	verbosePtr := flag.Bool("v", false, "Диагностика в stderr")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка конфигурации: %v", err)
		}
		cfg = loaded
	}
	if *rootPtr != "" {
		cfg.Root = *rootPtr
	}
	if *docPtr != "" {
		cfg.Document = *docPtr
	}

	if *verbosePtr {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logging.ParseLevel(cfg.LogLevel),
		})))
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "infer":
		runInfer(args[1:])
	case "validate":
		runValidate(args[1:])
	case "resolve":
		err = runResolve(cfg, args[1:])
	case "preload":
		err = runPreload(cfg, args[1:])
	case "keys":
		err = runKeys(cfg)
	case "set":
		err = runSet(cfg, args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("[-] %s: %v", args[0], err)
	}
}

func runInfer(files []string) {
	inf := background.InferPattern(files)
	fmt.Printf("[*] Шаблон: %s\n", inf.Pattern)
	for _, name := range inf.NonConforming {
		fmt.Printf("[!] Не подходит под шаблон: %s\n", name)
	}
}

func runValidate(args []string) {
	if len(args) != 1 {
		log.Fatalf("[-] validate принимает ровно один аргумент")
	}
	fmt.Printf("[*] Состояние: %s\n", background.Validate(args[0]))
	fmt.Printf("[*] После исправления: %s\n", background.Fixup(args[0]))
}

// openDocument загружает документ из конфигурации и возвращает путь к нему.
// Если документа нет, фон получает значения по умолчанию, чтобы шаблоны
// можно было пробовать на пустой папке. Пути изображений считаются от
// папки документа.
func openDocument(cfg *config.Config) (*background.Background, *geometry.Manager, string, error) {
	easing, ok := geometry.EasingByName(cfg.Interpolation)
	if !ok {
		return nil, nil, "", fmt.Errorf("неизвестная интерполяция %q (допустимо: %v)", cfg.Interpolation, geometry.EasingNames())
	}
	bg := background.New(nil)
	mgr := geometry.NewManager(geometry.WithEasing(easing))

	path := filepath.Join(cfg.Root, cfg.Document)
	if cfg.Document == "latest" {
		latest, err := document.FindLatest(cfg.Root)
		switch {
		case errors.Is(err, document.ErrNoDocuments):
			// Новый документ сохраняется как autosave
			path = document.AutosavePath(cfg.Root)
		case err != nil:
			return nil, nil, "", err
		default:
			path = latest
		}
	}
	bg.SetRoot(os.DirFS(filepath.Dir(path)))

	doc, err := document.Read(path)
	if os.IsNotExist(err) {
		logging.Logger().Debug("документ не найден, значения по умолчанию", "path", path)
		return bg, mgr, path, nil
	}
	if err != nil {
		return nil, nil, "", err
	}
	if err := doc.Apply(bg, mgr); err != nil {
		return nil, nil, "", err
	}
	fmt.Printf("[*] Документ: %s\n", path)
	return bg, mgr, path, nil
}

func runResolve(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	patternPtr := fs.String("pattern", "", "Шаблон изображений (по умолчанию: из документа)")
	holdPtr := fs.Bool("hold", false, "Держать последний существующий кадр")
	fs.Parse(args)

	bg, _, _, err := openDocument(cfg)
	if err != nil {
		return err
	}
	if *patternPtr != "" {
		bg.SetImageURLPattern(*patternPtr)
	}
	if isFlagSet(fs, "hold") {
		bg.SetHold(*holdPtr)
	}

	fmt.Printf("[*] Шаблон: %q hold=%v\n", bg.ImageURLPattern(), bg.Hold())
	for _, a := range fs.Args() {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("неверный кадр %q: %w", a, err)
		}
		if p, ok := bg.ImagePath(frame.Frame(n)); ok {
			fmt.Printf("%6d  %s\n", n, p)
		} else {
			fmt.Printf("%6d  (нет)\n", n)
		}
	}
	return nil
}

func runPreload(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preload", flag.ExitOnError)
	fromPtr := fs.Int("from", 0, "Первый кадр")
	toPtr := fs.Int("to", 0, "Последний кадр (по умолчанию: последний кадр со своим изображением)")
	fs.Parse(args)

	bg, _, path, err := openDocument(cfg)
	if err != nil {
		return err
	}
	to := frame.Frame(*toPtr)
	if !isFlagSet(fs, "to") {
		if frames := bg.ImageFrames(); len(frames) > 0 {
			to = frames[len(frames)-1]
		}
	}

	lib := source.NewLibrary(os.DirFS(filepath.Dir(path)),
		source.WithWorkers(cfg.Workers),
		source.WithBudget(cfg.CacheBytes),
		source.WithPDFDPI(cfg.PDFDPI),
	)
	defer lib.Purge()

	n, err := lib.Preload(context.Background(), bg, frame.Frame(*fromPtr), to)
	if err != nil {
		return err
	}
	fmt.Printf("[+] Декодировано файлов: %d, кадры %d..%d, в кэше %d байт\n", n, *fromPtr, to, lib.Used())

	if img, path, err := lib.Frame(bg, frame.Frame(*fromPtr)); err == nil {
		th := source.Thumbnail(img, cfg.ThumbnailSize).Bounds()
		fmt.Printf("[*] Кадр %d: %s %dx%d (превью %dx%d)\n", *fromPtr, path, img.Bounds().Dx(), img.Bounds().Dy(), th.Dx(), th.Dy())
	}
	return nil
}

func runKeys(cfg *config.Config) error {
	_, mgr, _, err := openDocument(cfg)
	if err != nil {
		return err
	}
	for _, cell := range mgr.Cells() {
		kind, _ := mgr.Kind(cell)
		fmt.Printf("%s %d: ключи %v\n", kind, cell, mgr.Keys(cell))
	}
	return nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// quietForm - форма без интерфейса: значения никуда не выводятся.
type quietForm struct{}

func (quietForm) ShowColor(background.Color)           {}
func (quietForm) ShowImageURLPattern(string)           {}
func (quietForm) ShowPosition(background.Vec2)         {}
func (quietForm) ShowSizeType(background.SizeType)     {}
func (quietForm) ShowSize(background.Vec2)             {}
func (quietForm) ShowRepeatType(background.RepeatType) {}
func (quietForm) ShowOpacity(float64)                  {}
func (quietForm) ShowHold(bool)                        {}

func runSet(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	patternPtr := fs.String("pattern", "", "Текст шаблона изображений")
	opacityPtr := fs.Float64("opacity", 1, "Непрозрачность в [0,1]")
	holdPtr := fs.Bool("hold", true, "Держать последний существующий кадр")
	repeatPtr := fs.String("repeat", "", "Повтор: none, horizontal, vertical, both")
	undoPtr := fs.Int("undo", 0, "Отменить столько правок перед сохранением")
	fs.Parse(args)

	bg, mgr, path, err := openDocument(cfg)
	if err != nil {
		return err
	}
	rec := history.NewRecorder(bg, cfg.HistoryLimit)
	defer rec.Close()
	form := background.Bind(bg, quietForm{})
	defer form.Close()

	if files := fs.Args(); len(files) > 0 {
		for _, name := range form.SelectImages(files) {
			fmt.Printf("[!] Не подходит под шаблон: %s\n", name)
		}
	}
	if isFlagSet(fs, "pattern") {
		if background.Validate(*patternPtr) != background.Acceptable {
			fmt.Printf("[!] Шаблон исправлен на %q\n", background.Fixup(*patternPtr))
		}
		form.EditImageURLPattern(*patternPtr)
	}
	if isFlagSet(fs, "opacity") {
		form.EditOpacity(*opacityPtr)
	}
	if isFlagSet(fs, "hold") {
		form.EditHold(*holdPtr)
	}
	if *repeatPtr != "" {
		var r background.RepeatType
		if err := r.UnmarshalText([]byte(*repeatPtr)); err != nil {
			return err
		}
		form.EditRepeatType(r)
	}

	for i := 0; i < *undoPtr; i++ {
		if err := rec.Undo(); err != nil {
			fmt.Printf("[!] %v\n", err)
			break
		}
	}

	if err := document.Write(document.FromState(bg, mgr), path); err != nil {
		return err
	}
	fmt.Printf("[+] Сохранено: %s (состояний в истории: %d, шаблон %q)\n", path, rec.Checkpoints(), bg.ImageURLPattern())
	return nil
}
