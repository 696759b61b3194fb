package config

var DefaultConfig = Config{
    HumanMark:    "X",
    ThinkDelayMS: 500,
    Symbols: Symbols{
        X:     'X',
        O:     'O',
        Empty: '·',
    },
    Colors: Colors{
        Board:  236,
        Human:  167,
        Comp:   74,
        Win:    221,
        Cursor: 240,
    },
}
